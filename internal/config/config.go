package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Version   string          `mapstructure:"version"`
	Server    ServerConfig    `mapstructure:"server"`
	AI        AIConfig        `mapstructure:"ai"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Decode    DecodeConfig    `mapstructure:"decode"`
	Log       LogConfig       `mapstructure:"log"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Mode               string        `mapstructure:"mode"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// AIConfig AI 服务配置
// 生成参数对所有请求生效，不支持按请求覆盖
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Timeout  time.Duration   `mapstructure:"timeout"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Limit         int           `mapstructure:"limit"`
	Window        time.Duration `mapstructure:"window"`
	Store         string        `mapstructure:"store"`          // memory, redis
	SweepInterval time.Duration `mapstructure:"sweep_interval"` // 0 表示不清理
}

// DecodeConfig 结构化输出解码配置
type DecodeConfig struct {
	Policy string `mapstructure:"policy"` // lenient, strict
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置，URI 为空时不记录用量
type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

const (
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
	ProviderArk    = "ark"
	ProviderGemini = "gemini"

	StoreMemory = "memory"
	StoreRedis  = "redis"

	DecodeLenient = "lenient"
	DecodeStrict  = "strict"
)

// Validate 验证配置有效性
// 缺少 ai.api_key 不在此处报错，而是在请求时返回 AUTH_ERROR
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	switch c.AI.Provider {
	case ProviderOpenAI, ProviderAzure, ProviderArk, ProviderGemini:
	default:
		return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
	}
	if c.AI.Options.MaxTokens <= 0 {
		return errors.New("ai.options.max_tokens must be positive")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0 {
			return errors.New("rate_limit.limit and rate_limit.window must be positive")
		}
		switch c.RateLimit.Store {
		case StoreMemory:
		case StoreRedis:
			if c.Redis.Addr == "" {
				return errors.New("rate_limit.store is redis but redis.addr is empty")
			}
		default:
			return fmt.Errorf("invalid rate_limit.store %q, must be memory/redis", c.RateLimit.Store)
		}
	}

	switch c.Decode.Policy {
	case DecodeLenient, DecodeStrict:
	default:
		return fmt.Errorf("invalid decode.policy %q, must be lenient/strict", c.Decode.Policy)
	}

	return nil
}
