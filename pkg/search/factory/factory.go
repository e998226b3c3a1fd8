package factory

import (
	"fmt"

	"github.com/iWorld-y/site_radar/internal/config"
	"github.com/iWorld-y/site_radar/pkg/search"
	"github.com/iWorld-y/site_radar/pkg/searxng"
	"github.com/iWorld-y/site_radar/pkg/serper"
	"github.com/iWorld-y/site_radar/pkg/tavily"
)

// NewSearcher 根据 provider 名称创建搜索实例
func NewSearcher(cfg *config.Config, provider string) (search.Searcher, error) {
	switch provider {
	case "tavily":
		c, err := NewTavily(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "serper":
		if cfg.Search.Serper.APIKey == "" {
			return nil, config.ErrMissingSerperKey
		}
		return serper.NewClient(cfg.Search.Serper.APIKey, cfg.Search.Serper.Country), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, config.ErrMissingSearXNGURL
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("search provider %q: %w", provider, config.ErrUnknownProvider)
	}
}

// NewTavily 竞品列表只能由 Tavily 的问答接口提供
func NewTavily(cfg *config.Config) (*tavily.Client, error) {
	if cfg.Search.Tavily.APIKey == "" {
		return nil, config.ErrMissingTavilyKey
	}
	return tavily.NewClient(cfg.Search.Tavily.APIKey), nil
}
