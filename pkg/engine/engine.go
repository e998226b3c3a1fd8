// Package engine 串联爬虫、LLM、检索与报告生成，完成一次网站分析
package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/site_radar/internal/config"
	"github.com/iWorld-y/site_radar/internal/logger"
	"github.com/iWorld-y/site_radar/pkg/crawler"
	"github.com/iWorld-y/site_radar/pkg/datasets"
	"github.com/iWorld-y/site_radar/pkg/extract"
	"github.com/iWorld-y/site_radar/pkg/llm"
	"github.com/iWorld-y/site_radar/pkg/model"
	"github.com/iWorld-y/site_radar/pkg/prompt"
	"github.com/iWorld-y/site_radar/pkg/report"
	"github.com/iWorld-y/site_radar/pkg/search/factory"
	"github.com/iWorld-y/site_radar/pkg/tavily"
)

// ErrInvalidURL 待分析的网址无法解析
var ErrInvalidURL = errors.New("invalid website url")

// FooterCrawler 抓取页脚链接页面
type FooterCrawler interface {
	Crawl(ctx context.Context, site string) (*crawler.Footer, error)
}

// Answerer 返回问答式检索的答案
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// DatasetFinder 为关键词检索数据集链接，失败时返回空结果
type DatasetFinder interface {
	Find(ctx context.Context, terms string) model.DatasetLinks
}

// Engine 核心处理引擎，可被多个请求共享
type Engine struct {
	gen       llm.Generator
	crawler   FooterCrawler
	answerer  Answerer
	finder    DatasetFinder
	theme     *report.Theme
	outputDir string
	workers   int
}

// Options 引擎参数
type Options struct {
	OutputDir     string
	SearchWorkers int
	Theme         *report.Theme
}

func New(gen llm.Generator, fc FooterCrawler, answerer Answerer, finder DatasetFinder, opts Options) *Engine {
	if opts.Theme == nil {
		opts.Theme = report.DefaultTheme()
	}
	if opts.SearchWorkers <= 0 {
		opts.SearchWorkers = 4
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	return &Engine{
		gen:       gen,
		crawler:   fc,
		answerer:  answerer,
		finder:    finder,
		theme:     opts.Theme,
		outputDir: opts.OutputDir,
		workers:   opts.SearchWorkers,
	}
}

// NewFromConfig 按配置创建所有依赖
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Engine, error) {
	gen, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tc, err := factory.NewTavily(cfg)
	if err != nil {
		return nil, fmt.Errorf("竞品检索初始化失败: %w", err)
	}

	searcher, err := factory.NewSearcher(cfg, cfg.Datasets.Provider)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}
	finder, err := datasets.NewFinder(searcher, cfg.Search.Serper.Country, cfg.Datasets.CacheSize)
	if err != nil {
		return nil, err
	}

	fc := crawler.New(crawler.Options{
		Timeout:     cfg.CrawlerTimeout(),
		Parallelism: cfg.Crawler.Parallelism,
		UserAgent:   cfg.Crawler.UserAgent,
		MaxLinks:    cfg.Crawler.MaxLinks,
	})

	return New(gen, fc, tc, finder, Options{
		OutputDir:     cfg.Output.Dir,
		SearchWorkers: cfg.Concurrency.SearchWorkers,
	}), nil
}

// OutputDir 默认的报告输出目录
func (e *Engine) OutputDir() string { return e.outputDir }

// RunOptions 运行选项
type RunOptions struct {
	Website string
	// OutputDir 为空时使用引擎的默认目录
	OutputDir        string
	ProgressCallback func(status string, progress int)
}

// NormalizeURL 补全协议并校验主机名
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return u.String(), nil
}

// Run 分析网站并在输出目录生成全部报告
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*model.Result, error) {
	prog := newProgress(opts.ProgressCallback)
	res, err := e.analyze(ctx, opts.Website, prog)
	if err != nil {
		return nil, err
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = e.outputDir
	}
	prog.report("rendering reports", 90)
	files, err := report.Generate(dir, e.theme, res)
	if err != nil {
		return nil, fmt.Errorf("生成报告失败: %w", err)
	}
	res.Files = files

	prog.report("completed", 100)
	return res, nil
}

// Analyze 执行抓取、分析与数据集检索，不写文件
func (e *Engine) Analyze(ctx context.Context, opts RunOptions) (*model.Result, error) {
	return e.analyze(ctx, opts.Website, newProgress(opts.ProgressCallback))
}

func (e *Engine) analyze(ctx context.Context, website string, prog *progress) (*model.Result, error) {
	site, err := NormalizeURL(website)
	if err != nil {
		return nil, err
	}
	prog.report("starting", 0)
	logger.Log.Infof("开始分析网站: %s", site)

	res := &model.Result{Website: site}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.FooterContent = e.footerContent(gctx, site)
		prog.report("footer crawled", 15)

		raw, err := e.gen.Generate(gctx, prompt.Company(site, res.FooterContent))
		if err != nil {
			return fmt.Errorf("公司分析失败: %w", err)
		}
		res.CompanyAnalysisRaw = raw
		prog.report("company analysis generated", 35)
		return nil
	})
	g.Go(func() error {
		res.Competitors = e.competitors(gctx, site)
		prog.report("competitors found", 10)

		raw, err := e.gen.Generate(gctx, prompt.Competitor(res.Competitors))
		if err != nil {
			return fmt.Errorf("竞品分析失败: %w", err)
		}
		res.CompetitorAnalysisRaw = raw
		prog.report("competitor analysis generated", 35)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Company = extract.Company(res.CompanyAnalysisRaw)
	res.Competitor = extract.Competitors(res.CompetitorAnalysisRaw)

	raw, err := e.gen.Generate(ctx, prompt.UseCases(res.CompanyAnalysisRaw, res.CompetitorAnalysisRaw))
	if err != nil {
		return nil, fmt.Errorf("用例生成失败: %w", err)
	}
	res.UseCasesRaw = raw
	res.UseCases = withKeywordFallback(extract.UseCases(raw), extract.UseCaseKeywords(raw))
	prog.report(fmt.Sprintf("generated %d use cases", len(res.UseCases)), 55)

	links, err := e.datasetLinks(ctx, res.UseCases, prog)
	if err != nil {
		return nil, err
	}
	res.DatasetLinks = links

	logger.Log.Infof("网站分析完成: %s，用例 %d 个，竞品 %d 个", site, len(res.UseCases), res.Competitor.Competitors.Len())
	return res, nil
}

// footerContent 页脚抓取失败不影响后续分析
func (e *Engine) footerContent(ctx context.Context, site string) string {
	footer, err := e.crawler.Crawl(ctx, site)
	if err != nil {
		if errors.Is(err, crawler.ErrNoFooter) {
			logger.Log.Warnf("网站没有页脚: %s", site)
		} else {
			logger.Log.Errorf("页脚抓取失败 [%s]: %v", site, err)
		}
		return ""
	}
	return footer.Combined()
}

func (e *Engine) competitors(ctx context.Context, site string) []string {
	answer, err := e.answerer.Answer(ctx, prompt.CompetitorList(site))
	if err != nil {
		logger.Log.Warnf("竞品列表获取失败 [%s]: %v", site, err)
		return []string{}
	}
	names := tavily.ParseList(answer)
	logger.Log.Infof("发现 %d 个竞品: %s", len(names), strings.Join(names, ", "))
	return names
}

// withKeywordFallback 解析结果缺少关键词时，用原文中 **Keywords:** 行补齐
func withKeywordFallback(useCases []model.UseCase, entries []extract.KeywordEntry) []model.UseCase {
	byHeading := make(map[string][]string, len(entries))
	for _, e := range entries {
		byHeading[e.Heading] = e.Keywords
	}
	for i := range useCases {
		if useCases[i].Keywords != "" {
			continue
		}
		if kw, ok := byHeading[useCases[i].Title]; ok {
			useCases[i].Keywords = strings.Join(kw, ", ")
		}
	}
	return useCases
}

// datasetLinks 按用例标题并发检索，同名用例以最后一个为准
func (e *Engine) datasetLinks(ctx context.Context, useCases []model.UseCase, prog *progress) (map[string]model.DatasetLinks, error) {
	terms := make(map[string]string, len(useCases))
	var titles []string
	for _, uc := range useCases {
		if _, ok := terms[uc.Title]; !ok {
			titles = append(titles, uc.Title)
		}
		terms[uc.Title] = uc.SearchTerms()
	}

	var (
		mu    sync.Mutex
		done  int
		links = make(map[string]model.DatasetLinks, len(titles))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, title := range titles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found := model.NewDatasetLinks()
			if t := terms[title]; t != "" {
				found = e.finder.Find(gctx, t)
			}

			mu.Lock()
			links[title] = found
			done++
			p := 55 + done*35/len(titles)
			mu.Unlock()
			prog.report(fmt.Sprintf("datasets found: %s", title), p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return links, nil
}

// progress 串行化进度回调，保证进度只增不减
type progress struct {
	mu   sync.Mutex
	last int
	cb   func(status string, progress int)
}

func newProgress(cb func(status string, progress int)) *progress {
	return &progress{cb: cb}
}

func (p *progress) report(status string, value int) {
	if p.cb == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if value < p.last {
		value = p.last
	}
	p.last = value
	p.cb(status, value)
}
