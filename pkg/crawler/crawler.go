// Package crawler 抓取网站页脚链接指向的页面正文
package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/gocolly/colly/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/iWorld-y/site_radar/internal/logger"
)

// ErrNoFooter 首页没有 <footer> 元素
var ErrNoFooter = errors.New("no footer found on the page")

const originKey = "origin"

// Options 爬虫参数
type Options struct {
	Timeout     time.Duration
	Parallelism int
	UserAgent   string
	MaxLinks    int // 0 表示不限制
}

// Link 页脚中的一个链接
type Link struct {
	Text string
	URL  string
}

// Footer 一次页脚抓取的结果
type Footer struct {
	Site  string
	Links []Link
	// Pages 绝对 URL -> 页面正文，按页脚中首次出现的顺序
	Pages *orderedmap.OrderedMap[string, string]
}

// Combined 拼接所有页面，格式为 "\n\nURL: <url>\nContent:\n<text>"
func (f *Footer) Combined() string {
	if f == nil || f.Pages == nil {
		return ""
	}
	var b strings.Builder
	for pair := f.Pages.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "\n\nURL: %s\nContent:\n%s", pair.Key, pair.Value)
	}
	return b.String()
}

// Crawler 页脚爬虫
type Crawler struct {
	opts Options
}

func New(opts Options) *Crawler {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 4
	}
	return &Crawler{opts: opts}
}

func (c *Crawler) newCollector(ctx context.Context, async bool) *colly.Collector {
	options := []colly.CollectorOption{colly.StdlibContext(ctx), colly.Async(async)}
	if c.opts.UserAgent != "" {
		options = append(options, colly.UserAgent(c.opts.UserAgent))
	}
	col := colly.NewCollector(options...)
	col.SetRequestTimeout(c.opts.Timeout)
	return col
}

// Crawl 抓取 site 首页的第一个 <footer>，并获取其中每个链接页面的正文。
// 单个页面失败时记录 "Failed to fetch content: <err>"，不影响整体结果。
func (c *Crawler) Crawl(ctx context.Context, site string) (*Footer, error) {
	links, err := c.footerLinks(ctx, site)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("页脚共发现 %d 个链接: %s", len(links), site)

	pages, err := c.fetchPages(ctx, links)
	if err != nil {
		return nil, err
	}
	return &Footer{Site: site, Links: links, Pages: pages}, nil
}

func (c *Crawler) footerLinks(ctx context.Context, site string) ([]Link, error) {
	col := c.newCollector(ctx, false)

	var (
		found bool
		links []Link
	)
	col.OnHTML("footer", func(e *colly.HTMLElement) {
		if found {
			return
		}
		found = true
		e.ForEach("a[href]", func(_ int, a *colly.HTMLElement) {
			abs := a.Request.AbsoluteURL(a.Attr("href"))
			if abs == "" {
				return
			}
			links = append(links, Link{Text: strings.TrimSpace(a.Text), URL: abs})
		})
	})

	if err := col.Visit(site); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", site, err)
	}
	if !found {
		return nil, ErrNoFooter
	}
	if c.opts.MaxLinks > 0 && len(links) > c.opts.MaxLinks {
		links = links[:c.opts.MaxLinks]
	}
	return links, nil
}

func (c *Crawler) fetchPages(ctx context.Context, links []Link) (*orderedmap.OrderedMap[string, string], error) {
	// 先按页脚顺序占位，之后只更新值
	pages := orderedmap.New[string, string]()
	var targets []string
	for _, l := range links {
		if _, ok := pages.Get(l.URL); ok {
			continue
		}
		pages.Set(l.URL, "")
		targets = append(targets, l.URL)
	}

	var mu sync.Mutex
	record := func(u, text string) {
		mu.Lock()
		pages.Set(u, text)
		mu.Unlock()
	}

	col := c.newCollector(ctx, true)
	if err := col.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: c.opts.Parallelism}); err != nil {
		return nil, fmt.Errorf("set crawl limit: %w", err)
	}
	col.OnResponse(func(r *colly.Response) {
		record(r.Ctx.Get(originKey), pageText(r.Body, r.Request.URL))
	})
	col.OnError(func(r *colly.Response, err error) {
		origin := r.Ctx.Get(originKey)
		logger.Log.Warnf("页面抓取失败 [%s]: %v", origin, err)
		record(origin, failure(err))
	})

	for _, target := range targets {
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			record(target, failure(fmt.Errorf("unsupported url %q", target)))
			continue
		}
		// 重定向后 Request.URL 会变化，用原始链接作为键
		reqCtx := colly.NewContext()
		reqCtx.Put(originKey, target)
		if err := col.Request(http.MethodGet, target, nil, reqCtx, nil); err != nil {
			record(target, failure(err))
		}
	}
	col.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pages, nil
}

func failure(err error) string {
	return "Failed to fetch content: " + err.Error()
}

// pageText 优先使用 readability 提取正文，失败时退回页面可见文本
func pageText(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text
		}
	}
	return visibleText(body)
}

// visibleText 去掉 script/style 后按文档顺序用换行连接所有文本节点
func visibleText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, template").Remove()

	var parts []string
	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, n *goquery.Selection) {
			if goquery.NodeName(n) == "#text" {
				if t := strings.TrimSpace(n.Text()); t != "" {
					parts = append(parts, t)
				}
				return
			}
			walk(n)
		})
	}
	walk(doc.Selection)
	return strings.Join(parts, "\n")
}
