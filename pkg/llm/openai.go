package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModelGenerator 基于 eino ChatModel 的实现，用于 OpenAI 兼容接口
type ChatModelGenerator struct {
	cm model.ChatModel
}

var _ Generator = (*ChatModelGenerator)(nil)

// NewOpenAI 创建 OpenAI 兼容的生成器，baseURL 为空时使用官方地址
func NewOpenAI(ctx context.Context, baseURL, apiKey, modelName string) (*ChatModelGenerator, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewChatModelGenerator(cm), nil
}

func NewChatModelGenerator(cm model.ChatModel) *ChatModelGenerator {
	return &ChatModelGenerator{cm: cm}
}

func (g *ChatModelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}
