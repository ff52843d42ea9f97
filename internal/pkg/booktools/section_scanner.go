package booktools

import (
	"regexp"
	"strings"

	model "quill/internal/model/generation"
)

// 标题行最多允许的词数（冒号之前）
const maxHeadingWords = 6

// 没有冒号和 markdown 标记时，短行也可视为标题
const maxBareHeadingWords = 4

var (
	bulletPattern   = regexp.MustCompile(`^\s*(?:[-•*+]|\d+[.)])\s+`)
	headingMarkers  = regexp.MustCompile(`^\s*(?:#+\s*)?(?:\*\*|__)?`)
	trailingMarkers = regexp.MustCompile(`(?:\*\*|__)?\s*$`)
)

// sectionScanner 段落扫描状态机
// 状态为当前活动字段，遇到含关键词的标题行或以冒号结尾的引导行时切换，其余行追加到当前字段
type sectionScanner struct {
	shape    model.Shape
	active   string
	buffers  map[string][]string
	switched bool
}

func newSectionScanner(shape model.Shape) *sectionScanner {
	return &sectionScanner{
		shape:   shape,
		active:  shape.Summary,
		buffers: make(map[string][]string, len(shape.Fields)),
	}
}

// Feed 处理一行文本
func (s *sectionScanner) Feed(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	if key, inline, ok := s.transition(trimmed); ok {
		s.active = key
		s.switched = true
		if inline != "" {
			s.buffers[key] = append(s.buffers[key], inline)
		}
		return
	}
	s.buffers[s.active] = append(s.buffers[s.active], trimmed)
}

// transition 判断该行是否切换段落，返回目标字段和冒号后的内联文本
func (s *sectionScanner) transition(line string) (string, string, bool) {
	if bulletPattern.MatchString(line) {
		return "", "", false
	}

	stripped := strings.TrimSpace(headingMarkers.ReplaceAllString(line, ""))
	marked := len(stripped) < len(line)

	head, inline, hasColon := strings.Cut(stripped, ":")
	head = strings.TrimSpace(trailingMarkers.ReplaceAllString(head, ""))
	inline = strings.TrimSpace(strings.TrimLeft(inline, "*_ "))
	words := len(strings.Fields(head))

	switch {
	case words == 0:
		return "", "", false
	case hasColon && inline == "":
		// 以冒号结尾的引导句（"... are as follows:"）不限词数
	case hasColon || marked:
		if words > maxHeadingWords {
			return "", "", false
		}
	default:
		if words > maxBareHeadingWords || strings.ContainsAny(head[len(head)-1:], ".!?\"") {
			return "", "", false
		}
	}

	key, ok := s.match(strings.ToLower(head))
	if !ok {
		return "", "", false
	}
	return key, inline, true
}

// match 在标题中查找关键词，取最长的匹配
func (s *sectionScanner) match(head string) (string, bool) {
	best, bestLen := "", 0
	for _, f := range s.shape.Fields {
		for _, kw := range f.Keywords {
			if len(kw) > bestLen && strings.Contains(head, kw) {
				best, bestLen = f.Key, len(kw)
			}
		}
	}
	return best, bestLen > 0
}

// Record 输出结果，列表字段总是非 nil
func (s *sectionScanner) Record() model.Record {
	rec := make(model.Record, len(s.shape.Fields))
	for _, f := range s.shape.Fields {
		lines := s.buffers[f.Key]
		if f.List {
			rec[f.Key] = splitItems(lines)
		} else {
			rec[f.Key] = strings.Join(lines, "\n")
		}
	}
	return rec
}

// Text 字段的文本内容
func (s *sectionScanner) Text(key string) string {
	return strings.Join(s.buffers[key], "\n")
}

// Items 列表字段的条目
func (s *sectionScanner) Items(key string) []string {
	return splitItems(s.buffers[key])
}

// splitItems 每个非空行一项，去掉行首的项目符号
func splitItems(lines []string) []string {
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		item := strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// scanSections 对整段文本运行段落扫描
func scanSections(shape model.Shape, text string) *sectionScanner {
	s := newSectionScanner(shape)
	for _, line := range strings.Split(text, "\n") {
		s.Feed(line)
	}
	return s
}
