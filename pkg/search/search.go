package search

import "context"

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
	Country    string // 地区代码，如 "in"、"us"；不支持的 provider 忽略
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// URLs 按顺序返回所有结果链接
func (r *Response) URLs() []string {
	if r == nil {
		return nil
	}
	urls := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.URL != "" {
			urls = append(urls, res.URL)
		}
	}
	return urls
}

// Result 单条搜索结果
type Result struct {
	Title   string
	URL     string
	Content string
	Score   float64
}
