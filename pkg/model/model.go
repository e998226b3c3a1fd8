package model

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// UseCase 单个 AI 应用场景
type UseCase struct {
	Title       string   `json:"title"`
	Objective   string   `json:"objective"`
	Application string   `json:"application"`
	Benefits    []string `json:"benefits"`
	Keywords    string   `json:"keywords"` // 逗号分隔
}

// KeywordList 按 ", " 拆分关键词
func (u UseCase) KeywordList() []string {
	var out []string
	for _, k := range strings.Split(u.Keywords, ", ") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// SearchTerms 数据集检索使用的关键词串
func (u UseCase) SearchTerms() string {
	return strings.Join(u.KeywordList(), " ")
}

// CompanyAnalysis 公司分析
type CompanyAnalysis struct {
	Offerings   []string `json:"offerings"`
	FocusAreas  []string `json:"focus_areas"`
	VisionGoals []string `json:"vision_goals"`
	Industry    []string `json:"industry"`
}

// NewCompanyAnalysis 所有字段初始化为空切片
func NewCompanyAnalysis() CompanyAnalysis {
	return CompanyAnalysis{
		Offerings:   []string{},
		FocusAreas:  []string{},
		VisionGoals: []string{},
		Industry:    []string{},
	}
}

// CompetitorAnalysis 市场与竞品分析
type CompetitorAnalysis struct {
	MarketTrends      []string `json:"market_trends"`
	DriversChallenges []string `json:"drivers_challenges"`
	Forecasts         []string `json:"forecasts"`
	IndustryReports   []string `json:"industry_reports"`
	// Competitors 按首次出现顺序保存
	Competitors *orderedmap.OrderedMap[string, []string] `json:"competitors"`
}

// NewCompetitorAnalysis 所有字段初始化为空
func NewCompetitorAnalysis() CompetitorAnalysis {
	return CompetitorAnalysis{
		MarketTrends:      []string{},
		DriversChallenges: []string{},
		Forecasts:         []string{},
		IndustryReports:   []string{},
		Competitors:       orderedmap.New[string, []string](),
	}
}

// CompetitorNames 按插入顺序返回竞品名称
func (c CompetitorAnalysis) CompetitorNames() []string {
	if c.Competitors == nil {
		return nil
	}
	names := make([]string, 0, c.Competitors.Len())
	for pair := c.Competitors.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// CompetitorDetails 返回某个竞品的明细
func (c CompetitorAnalysis) CompetitorDetails(name string) []string {
	if c.Competitors == nil {
		return nil
	}
	details, _ := c.Competitors.Get(name)
	return details
}

// DatasetLinks 某个用例对应的数据集链接
type DatasetLinks struct {
	GithubLinks      []string `json:"github_links"`
	KaggleLinks      []string `json:"kaggle_links"`
	HuggingfaceLinks []string `json:"huggingface_links"`
}

// NewDatasetLinks 三类链接均为空切片
func NewDatasetLinks() DatasetLinks {
	return DatasetLinks{
		GithubLinks:      []string{},
		KaggleLinks:      []string{},
		HuggingfaceLinks: []string{},
	}
}

// Empty 没有任何链接
func (d DatasetLinks) Empty() bool {
	return len(d.GithubLinks) == 0 && len(d.KaggleLinks) == 0 && len(d.HuggingfaceLinks) == 0
}

// ReportFiles 一次运行生成的文件路径
type ReportFiles struct {
	CompanyPDF  string `json:"company_pdf"`
	UseCasesPDF string `json:"use_cases_pdf"`
	HTML        string `json:"html"`
	Bundle      string `json:"bundle"`
}

// Result 一次网站分析的完整结果
type Result struct {
	Website               string                  `json:"website"`
	FooterContent         string                  `json:"footer_content"`
	CompanyAnalysisRaw    string                  `json:"company_analysis_raw"`
	CompetitorAnalysisRaw string                  `json:"competitor_analysis_raw"`
	UseCasesRaw           string                  `json:"use_cases_raw"`
	Competitors           []string                `json:"competitors"`
	Company               CompanyAnalysis         `json:"company"`
	Competitor            CompetitorAnalysis      `json:"competitor"`
	UseCases              []UseCase               `json:"use_cases"`
	DatasetLinks          map[string]DatasetLinks `json:"dataset_links"`
	Files                 ReportFiles             `json:"files"`
}
