// Package prompt 各阶段发给 LLM 的提示词。
// 输出格式需与 extract 包的识别规则保持一致。
package prompt

import (
	"fmt"
	"strings"
)

const companyTpl = `Based on the following content extracted from %s, provide a detailed analysis of the company.

Content:
%s

Structure the analysis under exactly these headings, each followed by bullet points starting with "- ":
1. Key offerings and services
2. Strategic focus areas
3. Vision and goals
4. Industry and market segment`

const competitorTpl = `List down company-wise their products and services offered in detail.
Competitors: %s

For every competitor write a line "Company: <name>" followed by bullet points starting with "- ".

Then provide a market analysis under these headings, each followed by bullet points:
1. Market trends in AI
2. Drivers and challenges in the AI landscape
3. Forecasts and growth potential
4. Industry reports from McKinsey or Deloitte (leave empty if none are found)`

const useCasesTpl = `As an AI/ML expert, propose relevant use cases where the company can leverage GenAI, LLMs, and ML technologies.
Add references (links) through which certain use cases were suggested.

Company Analysis:
%s

Competitors:
%s

Format each use case as follows:
**Use Case X: [Title]**
Objective: [Description]
AI Application: [Details]
Cross-Functional Benefits:
- [Benefit 1]
- [Benefit 2]
**Keywords:** [keyword1], [keyword2], [keyword3]`

// Company 公司分析提示词
func Company(site, footerContent string) string {
	return fmt.Sprintf(companyTpl, site, footerContent)
}

// Competitor 市场与竞品分析提示词
func Competitor(competitors []string) string {
	return fmt.Sprintf(competitorTpl, list(competitors))
}

// UseCases 用例生成提示词
func UseCases(companyAnalysis, competitorAnalysis string) string {
	return fmt.Sprintf(useCasesTpl, companyAnalysis, competitorAnalysis)
}

// CompetitorList Tavily 问答使用的竞品列表查询
func CompetitorList(site string) string {
	return fmt.Sprintf("List 5 competitors to %s in an array", site)
}

func list(names []string) string {
	if len(names) == 0 {
		return "none found"
	}
	return strings.Join(names, ", ")
}
