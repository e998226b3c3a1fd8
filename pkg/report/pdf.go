package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/iWorld-y/site_radar/pkg/model"
)

// document 在 fpdf 之上按 Theme 排版段落
type document struct {
	pdf   *fpdf.Fpdf
	theme *Theme
	tr    func(string) string
}

func newDocument(theme *Theme, title string) *document {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(theme.Margin, theme.Margin, theme.Margin)
	pdf.SetAutoPageBreak(true, theme.Margin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("site_radar", true)
	pdf.AddPage()
	return &document{
		pdf:   pdf,
		theme: theme,
		// 内置字体使用 cp1252 编码
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (d *document) paragraph(s Style, text string) {
	fontStyle := ""
	if s.Bold {
		fontStyle = "B"
	}
	d.pdf.SetFont(d.theme.Font, fontStyle, s.Size)
	d.pdf.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
	d.pdf.SetX(d.theme.Margin + s.Indent)
	d.pdf.MultiCell(0, s.Leading, d.tr(text), "", "L", false)
	d.pdf.Ln(s.SpaceAfter)
}

func (d *document) bullets(s Style, items []string) {
	for _, it := range items {
		d.paragraph(s, "• "+it)
	}
}

func (d *document) spacer(h float64) {
	d.pdf.Ln(h)
}

func (d *document) output(w io.Writer) error {
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteCompanyAnalysis 输出公司分析与市场/竞品分析报告，空的小节不输出
func WriteCompanyAnalysis(w io.Writer, theme *Theme, company model.CompanyAnalysis, competitor model.CompetitorAnalysis) error {
	d := newDocument(theme, "Company Analysis")
	t := theme

	d.paragraph(t.MainHeading, "Company Analysis")
	if len(company.Offerings) > 0 {
		d.paragraph(t.AnalysisSection, "Key Offerings and Services")
		d.bullets(t.AnalysisList, company.Offerings)
		d.spacer(t.SectionGap)
	}
	if len(company.FocusAreas) > 0 {
		d.paragraph(t.AnalysisSection, "Strategic Focus Areas")
		d.bullets(t.AnalysisList, company.FocusAreas)
		d.spacer(t.SectionGap)
	}
	if len(company.VisionGoals) > 0 {
		d.paragraph(t.AnalysisSection, "Vision and Goals")
		for _, g := range company.VisionGoals {
			d.paragraph(t.Body, g)
		}
		d.spacer(t.SectionGap)
	}
	if len(company.Industry) > 0 {
		d.paragraph(t.AnalysisSection, "Industry and Market Segment")
		for _, ind := range company.Industry {
			d.paragraph(t.Body, ind)
		}
	}
	d.spacer(t.ReportGap)

	d.paragraph(t.MainHeading, "Market & Competitor Analysis")
	if len(competitor.MarketTrends) > 0 {
		d.paragraph(t.AnalysisSection, "Market Trends in AI")
		d.bullets(t.AnalysisList, competitor.MarketTrends)
		d.spacer(t.SectionGap)
	}
	if len(competitor.DriversChallenges) > 0 {
		d.paragraph(t.AnalysisSection, "Key Drivers and Challenges")
		d.bullets(t.AnalysisList, competitor.DriversChallenges)
		d.spacer(t.SectionGap)
	}
	if len(competitor.Forecasts) > 0 {
		d.paragraph(t.AnalysisSection, "Market Forecasts and Growth Potential")
		for _, f := range competitor.Forecasts {
			d.paragraph(t.Body, f)
		}
		d.spacer(t.SectionGap)
	}
	if competitor.Competitors != nil && competitor.Competitors.Len() > 0 {
		d.paragraph(t.AnalysisSection, "Competitor Analysis")
		for pair := competitor.Competitors.Oldest(); pair != nil; pair = pair.Next() {
			d.paragraph(t.CompanyName, pair.Key)
			d.bullets(t.AnalysisList, pair.Value)
			d.spacer(t.CompanyGap)
		}
	}
	if len(competitor.IndustryReports) > 0 {
		d.paragraph(t.AnalysisSection, "Industry Reports and Insights")
		d.bullets(t.AnalysisList, competitor.IndustryReports)
	}

	return d.output(w)
}

// WriteUseCases 输出用例报告。links 中存在该用例标题时附上实现资源。
func WriteUseCases(w io.Writer, theme *Theme, useCases []model.UseCase, links map[string]model.DatasetLinks) error {
	d := newDocument(theme, "AI Use Cases")
	t := theme

	d.paragraph(t.MainHeading, "AI Use Cases & Implementation Resources")
	for _, uc := range useCases {
		d.paragraph(t.UseCaseTitle, uc.Title)

		d.paragraph(t.SectionHeading, "Objective:")
		d.paragraph(t.Body, uc.Objective)
		d.paragraph(t.SectionHeading, "AI Application:")
		d.paragraph(t.Body, uc.Application)

		d.paragraph(t.SectionHeading, "Cross-Functional Benefits:")
		d.bullets(t.BenefitText, uc.Benefits)

		d.paragraph(t.Keywords, "Keywords: "+uc.Keywords)

		if l, ok := links[uc.Title]; ok {
			d.paragraph(t.SectionHeading, "Implementation Resources:")
			for _, u := range l.GithubLinks {
				d.paragraph(t.Body, "• GitHub: "+u)
			}
			for _, u := range l.KaggleLinks {
				d.paragraph(t.Body, "• Kaggle: "+u)
			}
			for _, u := range l.HuggingfaceLinks {
				d.paragraph(t.Body, "• Hugging Face: "+u)
			}
		}
		d.spacer(t.UseCaseGap)
	}

	return d.output(w)
}
