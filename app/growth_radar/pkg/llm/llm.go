// Package llm 文本生成服务的统一入口
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/config"
)

// Generator 输入提示词，返回模型的原始文本输出
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc 便于测试或包装的函数适配器
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NewGenerator 根据配置中的 provider 创建生成器
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAIGenerator(ctx, cfg)
	case "gemini":
		return NewGeminiGenerator(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
