package llm

import (
	"context"
	"fmt"

	"github.com/iWorld-y/site_radar/internal/config"
)

// New 按配置创建带限流和重试的生成器
func New(ctx context.Context, cfg *config.Config) (Generator, error) {
	var (
		base Generator
		err  error
	)
	switch cfg.LLM.Provider {
	case "gemini":
		base, err = NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	case "openai":
		base, err = NewOpenAI(ctx, cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
	default:
		return nil, fmt.Errorf("llm provider %q: %w", cfg.LLM.Provider, config.ErrUnknownProvider)
	}
	if err != nil {
		return nil, err
	}
	return NewRetrying(base, NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.QPS)), nil
}
