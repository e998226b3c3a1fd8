package report

import (
	"bytes"
	"html/template"
	"io"

	"github.com/yuin/goldmark"

	"github.com/iWorld-y/site_radar/pkg/model"
)

var md = goldmark.New()

// renderMarkdown 原始 HTML 会被 goldmark 过滤
func renderMarkdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Site Radar | {{.Website}}</title>
    <style>
        :root {
            --primary-color: #1B4F72;
            --accent-color: #2874A6;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #566573;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 40px; padding: 20px 0; }
        h1 { font-size: 2.2rem; margin: 0 0 10px 0; color: var(--primary-color); }
        h2 { color: var(--accent-color); border-bottom: 2px solid var(--accent-color); padding-bottom: 6px; }
        .card { background: var(--card-bg); padding: 24px; border-radius: 12px; margin-bottom: 32px; border: 1px solid var(--border-color); }
        .keywords { color: var(--text-secondary); }
        .links a { word-break: break-all; }
        details { margin-top: 12px; }
        summary { cursor: pointer; color: var(--text-secondary); }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>Website AI Analysis</h1>
        <div class="keywords">{{.Website}}</div>
    </header>

    <section class="card">
        <h2>Company Analysis</h2>
        {{with .Company.Offerings}}<h3>Key Offerings and Services</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
        {{with .Company.FocusAreas}}<h3>Strategic Focus Areas</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
        {{with .Company.VisionGoals}}<h3>Vision and Goals</h3>{{range .}}<p>{{.}}</p>{{end}}{{end}}
        {{with .Company.Industry}}<h3>Industry and Market Segment</h3>{{range .}}<p>{{.}}</p>{{end}}{{end}}
        <details><summary>Raw analysis</summary>{{markdown .CompanyAnalysisRaw}}</details>
    </section>

    <section class="card">
        <h2>Market &amp; Competitor Analysis</h2>
        {{with .Competitor.MarketTrends}}<h3>Market Trends in AI</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
        {{with .Competitor.DriversChallenges}}<h3>Key Drivers and Challenges</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
        {{with .Competitor.Forecasts}}<h3>Market Forecasts and Growth Potential</h3>{{range .}}<p>{{.}}</p>{{end}}{{end}}
        {{with competitors .Competitor}}<h3>Competitor Analysis</h3>
        {{range .}}<h4>{{.Name}}</h4><ul>{{range .Details}}<li>{{.}}</li>{{end}}</ul>{{end}}{{end}}
        {{with .Competitor.IndustryReports}}<h3>Industry Reports and Insights</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
        <details><summary>Raw analysis</summary>{{markdown .CompetitorAnalysisRaw}}</details>
    </section>

    <section class="card">
        <h2>AI Use Cases &amp; Implementation Resources</h2>
        {{$links := .DatasetLinks}}
        {{range .UseCases}}
        <h3>{{.Title}}</h3>
        <p><strong>Objective:</strong> {{.Objective}}</p>
        <p><strong>AI Application:</strong> {{.Application}}</p>
        {{with .Benefits}}<p><strong>Cross-Functional Benefits:</strong></p><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
        <p class="keywords">Keywords: {{.Keywords}}</p>
        {{with datasetLinks $links .Title}}
        <div class="links"><strong>Implementation Resources:</strong><ul>
            {{range .GithubLinks}}<li>GitHub: <a href="{{.}}">{{.}}</a></li>{{end}}
            {{range .KaggleLinks}}<li>Kaggle: <a href="{{.}}">{{.}}</a></li>{{end}}
            {{range .HuggingfaceLinks}}<li>Hugging Face: <a href="{{.}}">{{.}}</a></li>{{end}}
        </ul></div>
        {{end}}
        {{end}}
        <details><summary>Raw use cases</summary>{{markdown .UseCasesRaw}}</details>
    </section>
</div>
</body>
</html>
`

type competitorEntry struct {
	Name    string
	Details []string
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"markdown": renderMarkdown,
	"datasetLinks": func(m map[string]model.DatasetLinks, title string) *model.DatasetLinks {
		if l, ok := m[title]; ok {
			return &l
		}
		return nil
	},
	"competitors": func(c model.CompetitorAnalysis) []competitorEntry {
		var out []competitorEntry
		for _, name := range c.CompetitorNames() {
			out = append(out, competitorEntry{Name: name, Details: c.CompetitorDetails(name)})
		}
		return out
	},
}).Parse(htmlTpl))

// WriteHTML 输出单页 HTML 摘要
func WriteHTML(w io.Writer, res *model.Result) error {
	return htmlTemplate.Execute(w, res)
}
