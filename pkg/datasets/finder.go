// Package datasets 为用例检索相关的 GitHub / Kaggle / Hugging Face 资源
package datasets

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/gg/gson"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/iWorld-y/site_radar/internal/logger"
	"github.com/iWorld-y/site_radar/pkg/model"
	"github.com/iWorld-y/site_radar/pkg/search"
)

const queryPrefix = "provide kaggle/hugging face datasets related to topic "

// Query 由用例关键词构造检索语句
func Query(terms string) string {
	return queryPrefix + terms
}

// Classify 按 github.com、kaggle.com、huggingface.co 的顺序归类，
// 每个链接只进入第一个命中的桶，其他链接丢弃
func Classify(urls []string) model.DatasetLinks {
	links := model.NewDatasetLinks()
	for _, u := range urls {
		switch {
		case strings.Contains(u, "github.com"):
			links.GithubLinks = append(links.GithubLinks, u)
		case strings.Contains(u, "kaggle.com"):
			links.KaggleLinks = append(links.KaggleLinks, u)
		case strings.Contains(u, "huggingface.co"):
			links.HuggingfaceLinks = append(links.HuggingfaceLinks, u)
		}
	}
	return links
}

// Finder 带 LRU 缓存的数据集检索，可并发使用
type Finder struct {
	searcher search.Searcher
	country  string
	cache    *lru.Cache[string, model.DatasetLinks]
}

// NewFinder cacheSize 为缓存的查询条数
func NewFinder(searcher search.Searcher, country string, cacheSize int) (*Finder, error) {
	cache, err := lru.New[string, model.DatasetLinks](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	return &Finder{searcher: searcher, country: country, cache: cache}, nil
}

// Find 检索与关键词相关的数据集链接。
// 检索失败只记录日志并返回空结果，失败结果不缓存。
func (f *Finder) Find(ctx context.Context, terms string) model.DatasetLinks {
	query := Query(terms)
	if links, ok := f.cache.Get(query); ok {
		logger.Log.Debugf("数据集缓存命中: %s", query)
		return links
	}

	resp, err := f.searcher.Search(ctx, &search.Request{Query: query, Country: f.country})
	if err != nil {
		logger.Log.Warnf("数据集检索失败 [%s]: %v", terms, err)
		return model.NewDatasetLinks()
	}
	logger.Log.Debugf("数据集检索 [%s] 成功: %s", terms, gson.ToString(resp))

	links := Classify(resp.URLs())
	f.cache.Add(query, links)
	return links
}
