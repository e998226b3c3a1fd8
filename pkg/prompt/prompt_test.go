package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/site_radar/pkg/extract"
)

func TestCompany(t *testing.T) {
	p := Company("https://acme.test", "URL: x\nContent:\nabout")
	assert.Contains(t, p, "https://acme.test")
	assert.Contains(t, p, "Content:\nURL: x\nContent:\nabout")

	// 要求的标题必须能被公司分析规则识别
	for _, heading := range []string{"1. Key offerings and services", "2. Strategic focus areas", "3. Vision and goals", "4. Industry and market segment"} {
		assert.Contains(t, p, heading)
		assert.Equal(t, extract.KindSectionHeader, extract.Classify(extract.TemplateCompany, heading).Kind, heading)
	}
}

func TestCompetitor(t *testing.T) {
	assert.Contains(t, Competitor(nil), "Competitors: none found")
	p := Competitor([]string{"Globex", "Initech"})
	assert.Contains(t, p, "Competitors: Globex, Initech")
	for _, heading := range []string{
		"1. Market trends in AI",
		"2. Drivers and challenges in the AI landscape",
		"3. Forecasts and growth potential",
		"4. Industry reports from McKinsey or Deloitte",
	} {
		assert.Contains(t, p, heading)
		assert.Equal(t, extract.KindSectionHeader, extract.Classify(extract.TemplateCompetitor, heading).Kind, heading)
	}
}

func TestUseCases(t *testing.T) {
	p := UseCases("COMPANY", "COMPETITORS")
	assert.Contains(t, p, "Company Analysis:\nCOMPANY")
	assert.Contains(t, p, "Competitors:\nCOMPETITORS")
	assert.Contains(t, p, "**Keywords:** [keyword1], [keyword2], [keyword3]")
}

func TestCompetitorList(t *testing.T) {
	assert.Equal(t, "List 5 competitors to https://acme.test in an array", CompetitorList("https://acme.test"))
}
