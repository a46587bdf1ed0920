package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/growth_radar/app/growth_radar/pkg/config"
)

const systemPrompt = "You are a JSON generator. Output only a JSON document."

// OpenAIGenerator 基于 eino ChatModel，兼容所有 OpenAI 协议的服务
type OpenAIGenerator struct {
	cm model.ChatModel
}

func NewOpenAIGenerator(ctx context.Context, cfg config.LLMConfig) (*OpenAIGenerator, error) {
	temperature := cfg.Temperature
	maxTokens := cfg.MaxTokens
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &OpenAIGenerator{cm: cm}, nil
}

// NewOpenAIGeneratorWithModel 直接使用已有的 ChatModel
func NewOpenAIGeneratorWithModel(cm model.ChatModel) *OpenAIGenerator {
	return &OpenAIGenerator{cm: cm}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}
	resp, err := g.cm.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("empty response")
	}
	return resp.Content, nil
}
