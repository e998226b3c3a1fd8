package extract

import (
	"strings"

	"github.com/iWorld-y/site_radar/pkg/model"
)

// Parser 某一模板的段落解析器
type Parser[T any] interface {
	Template() Template
	Feed(c Classification)
	Result() T
}

// Run 把原始文本逐行分类后喂给解析器，返回其结果
func Run[T any](p Parser[T], raw string) T {
	t := p.Template()
	for _, line := range Lines(raw) {
		p.Feed(Classify(t, line))
	}
	return p.Result()
}

// Lines 去掉加粗标记后按 "\n" 切分，trim 每一行并跳过空行
func Lines(raw string) []string {
	text := StripBold(raw)
	parts := strings.Split(text, "\n")
	lines := make([]string, 0, len(parts))
	for _, l := range parts {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// UseCases 解析用例列表
func UseCases(raw string) []model.UseCase {
	return Run[[]model.UseCase](NewUseCaseParser(), raw)
}

// Company 解析公司分析
func Company(raw string) model.CompanyAnalysis {
	return Run[model.CompanyAnalysis](NewCompanyParser(), raw)
}

// Competitors 解析市场与竞品分析
func Competitors(raw string) model.CompetitorAnalysis {
	return Run[model.CompetitorAnalysis](NewCompetitorParser(), raw)
}
