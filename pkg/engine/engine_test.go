package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/iWorld-y/site_radar/pkg/crawler"
	"github.com/iWorld-y/site_radar/pkg/extract"
	"github.com/iWorld-y/site_radar/pkg/model"
)

const (
	companyRaw    = "**1. Key offerings and services**\n- Rockets\n**4. Industry and market segment**\nAerospace\n"
	competitorRaw = "Market trends\n- Reusable boosters\nCompany: Acme\n- Heavy lift\nCompany: Globex\n- Small sats\n"
	useCasesRaw   = "**Use Case 1: Predictive Maintenance**\nObjective: Reduce downtime\nAI Application: Anomaly detection\nCross-Functional Benefits:\n- Ops: fewer failures\n**Keywords:** sensors, anomaly detection\n\n" +
		"**Use Case 2: Launch Scheduling**\nObjective: Optimize windows\nAI Application: Optimization\nCross-Functional Benefits:\n- Finance: lower cost\n**Keywords:** scheduling, optimization\n"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, p string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, p)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	switch {
	case strings.Contains(p, "detailed analysis of the company"):
		return companyRaw, nil
	case strings.Contains(p, "company-wise"):
		return competitorRaw, nil
	case strings.Contains(p, "propose relevant use cases"):
		return useCasesRaw, nil
	}
	return "", errors.New("unexpected prompt")
}

func (f *fakeGenerator) promptContaining(s string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.prompts {
		if strings.Contains(p, s) {
			return p
		}
	}
	return ""
}

type fakeCrawler struct {
	footer *crawler.Footer
	err    error
}

func (f *fakeCrawler) Crawl(context.Context, string) (*crawler.Footer, error) {
	return f.footer, f.err
}

type fakeAnswerer struct {
	answer string
	err    error
	query  string
}

func (f *fakeAnswerer) Answer(_ context.Context, q string) (string, error) {
	f.query = q
	return f.answer, f.err
}

type fakeFinder struct {
	mu    sync.Mutex
	terms []string
}

func (f *fakeFinder) Find(_ context.Context, terms string) model.DatasetLinks {
	f.mu.Lock()
	f.terms = append(f.terms, terms)
	f.mu.Unlock()
	links := model.NewDatasetLinks()
	links.GithubLinks = append(links.GithubLinks, "https://github.com/search?q="+strings.ReplaceAll(terms, " ", "+"))
	return links
}

func newFooter() *crawler.Footer {
	pages := orderedmap.New[string, string]()
	pages.Set("https://rockets.test/about", "We build rockets.")
	return &crawler.Footer{Site: "https://rockets.test", Pages: pages}
}

func TestRun_EndToEnd(t *testing.T) {
	gen := &fakeGenerator{}
	ans := &fakeAnswerer{answer: `["Acme", "Globex"]`}
	finder := &fakeFinder{}
	e := New(gen, &fakeCrawler{footer: newFooter()}, ans, finder, Options{SearchWorkers: 2})

	var (
		mu       sync.Mutex
		progress []int
	)
	dir := t.TempDir()
	res, err := e.Run(context.Background(), RunOptions{
		Website:   "rockets.test",
		OutputDir: dir,
		ProgressCallback: func(_ string, p int) {
			mu.Lock()
			progress = append(progress, p)
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://rockets.test", res.Website)
	assert.Equal(t, "List 5 competitors to https://rockets.test in an array", ans.query)
	assert.Equal(t, []string{"Acme", "Globex"}, res.Competitors)
	assert.Contains(t, res.FooterContent, "URL: https://rockets.test/about\nContent:\nWe build rockets.")

	assert.Contains(t, gen.promptContaining("detailed analysis of the company"), "We build rockets.")
	assert.Contains(t, gen.promptContaining("company-wise"), "Competitors: Acme, Globex")
	usePrompt := gen.promptContaining("propose relevant use cases")
	assert.Contains(t, usePrompt, companyRaw)
	assert.Contains(t, usePrompt, competitorRaw)

	assert.Equal(t, []string{"Rockets"}, res.Company.Offerings)
	assert.Equal(t, []string{"Aerospace"}, res.Company.Industry)
	assert.Equal(t, []string{"Acme", "Globex"}, res.Competitor.CompetitorNames())
	require.Len(t, res.UseCases, 2)
	assert.Equal(t, "sensors, anomaly detection", res.UseCases[0].Keywords)

	assert.ElementsMatch(t, []string{"sensors anomaly detection", "scheduling optimization"}, finder.terms)
	require.Contains(t, res.DatasetLinks, "Use Case 1: Predictive Maintenance")
	assert.Equal(t, []string{"https://github.com/search?q=sensors+anomaly+detection"},
		res.DatasetLinks["Use Case 1: Predictive Maintenance"].GithubLinks)

	assert.FileExists(t, res.Files.CompanyPDF)
	assert.FileExists(t, res.Files.UseCasesPDF)
	assert.FileExists(t, res.Files.Bundle)
	assert.True(t, strings.HasPrefix(res.Files.Bundle, dir))

	require.NotEmpty(t, progress)
	assert.Equal(t, 0, progress[0])
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
}

func TestAnalyze_DegradesOnCollaboratorFailures(t *testing.T) {
	gen := &fakeGenerator{}
	e := New(gen,
		&fakeCrawler{err: crawler.ErrNoFooter},
		&fakeAnswerer{err: errors.New("tavily down")},
		&fakeFinder{}, Options{})

	res, err := e.Analyze(context.Background(), RunOptions{Website: "https://rockets.test"})
	require.NoError(t, err)

	assert.Empty(t, res.FooterContent)
	assert.Empty(t, res.Competitors)
	assert.Contains(t, gen.promptContaining("company-wise"), "Competitors: none found")
	assert.Len(t, res.UseCases, 2)
	assert.Empty(t, res.Files.Bundle)
}

func TestAnalyze_LLMFailureFailsRun(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("invalid api key")}
	e := New(gen, &fakeCrawler{footer: newFooter()}, &fakeAnswerer{answer: "[]"}, &fakeFinder{}, Options{})

	_, err := e.Analyze(context.Background(), RunOptions{Website: "https://rockets.test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestAnalyze_InvalidURL(t *testing.T) {
	e := New(&fakeGenerator{}, &fakeCrawler{}, &fakeAnswerer{}, &fakeFinder{}, Options{})
	_, err := e.Analyze(context.Background(), RunOptions{Website: "   "})
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
		ok       bool
	}{
		{"example.com", "https://example.com", true},
		{"http://example.com/about", "http://example.com/about", true},
		{"  https://example.com  ", "https://example.com", true},
		{"ftp://example.com", "", false},
		{"https://", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeURL(tt.in)
		if tt.ok {
			assert.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got)
		} else {
			assert.ErrorIs(t, err, ErrInvalidURL, tt.in)
		}
	}
}

func TestDatasetLinks_DuplicateTitlesSearchOnce(t *testing.T) {
	finder := &fakeFinder{}
	e := New(&fakeGenerator{}, &fakeCrawler{}, &fakeAnswerer{}, finder, Options{SearchWorkers: 1})

	links, err := e.datasetLinks(context.Background(), []model.UseCase{
		{Title: "Use Case 1: A", Keywords: "first"},
		{Title: "Use Case 2: B"},
		{Title: "Use Case 1: A", Keywords: "second, try"},
	}, newProgress(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"second try"}, finder.terms)
	assert.Len(t, links, 2)
	assert.True(t, links["Use Case 2: B"].Empty())
}

func TestDatasetLinks_Canceled(t *testing.T) {
	e := New(&fakeGenerator{}, &fakeCrawler{}, &fakeAnswerer{}, &fakeFinder{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.datasetLinks(ctx, []model.UseCase{{Title: "Use Case 1: A", Keywords: "k"}}, newProgress(nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithKeywordFallback(t *testing.T) {
	useCases := []model.UseCase{
		{Title: "Use Case 1: A", Keywords: "kept"},
		{Title: "Use Case 2: B"},
		{Title: "Use Case 3: C"},
	}
	entries := []extract.KeywordEntry{
		{Heading: "Use Case 1: A", Keywords: []string{"ignored"}},
		{Heading: "Use Case 2: B", Keywords: []string{"x", "y"}},
	}

	got := withKeywordFallback(useCases, entries)
	assert.Equal(t, "kept", got[0].Keywords)
	assert.Equal(t, "x, y", got[1].Keywords)
	assert.Empty(t, got[2].Keywords)
}
