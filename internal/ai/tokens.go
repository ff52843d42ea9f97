package ai

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tiktoken-go/tokenizer"
)

// tokenCounter 上游未返回用量时本地估算 token 数
type tokenCounter struct {
	mu     sync.Mutex
	codecs map[string]tokenizer.Codec
}

func newTokenCounter() *tokenCounter {
	return &tokenCounter{codecs: make(map[string]tokenizer.Codec)}
}

// codec 优先使用模型对应的编码，未知模型使用 cl100k_base
func (t *tokenCounter) codec(model string) (tokenizer.Codec, error) {
	model = strings.ToLower(model)

	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.codecs[model]; ok {
		return c, nil
	}

	c, err := tokenizer.ForModel(tokenizer.Model(model))
	if err != nil {
		c, err = tokenizer.Get(tokenizer.Cl100kBase)
		if err != nil {
			return nil, err
		}
	}
	t.codecs[model] = c
	return c, nil
}

// Count 统计文本的 token 数，分词器不可用时按 4 字符一个 token 估算
func (t *tokenCounter) Count(model string, texts ...string) int {
	total := 0
	c, err := t.codec(model)
	for _, s := range texts {
		if s == "" {
			continue
		}
		if err == nil {
			if ids, _, encErr := c.Encode(s); encErr == nil {
				total += len(ids)
				continue
			}
		}
		total += (len(s) + 3) / 4
	}
	if err != nil {
		log.Debug().Err(err).Str("model", model).Msg("tokenizer unavailable, using length estimate")
	}
	return total
}
