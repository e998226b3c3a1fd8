// Package extract 把 LLM 生成的半结构化文本解析为类型化记录。
//
// 解析分三层：行分类（按模板的有序规则表判定每一行的角色）、
// 段落解析（每种模板一个显式状态机）、以及串起两者的提取管线。
// 整个包不做 I/O，也不会返回错误：无法识别的内容会被丢弃或作为普通续行处理。
package extract

import "strings"

// Template LLM 输出所遵循的模板
type Template int

const (
	TemplateUseCase Template = iota
	TemplateCompany
	TemplateCompetitor
)

func (t Template) String() string {
	switch t {
	case TemplateUseCase:
		return "use_case"
	case TemplateCompany:
		return "company"
	case TemplateCompetitor:
		return "competitor"
	}
	return "unknown"
}

// Kind 行在结构中的角色
type Kind int

const (
	KindPlainText Kind = iota
	KindSectionHeader
	KindFieldLabel
	KindBullet
	KindCompetitorHeader
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "plain_text"
	case KindSectionHeader:
		return "section_header"
	case KindFieldLabel:
		return "field_label"
	case KindBullet:
		return "bullet"
	case KindCompetitorHeader:
		return "competitor_header"
	}
	return "unknown"
}

// Section 段落标识
type Section int

const (
	SectionNone Section = iota
	SectionBenefits
	SectionOfferings
	SectionFocusAreas
	SectionVisionGoals
	SectionIndustry
	SectionMarketTrends
	SectionDriversChallenges
	SectionForecasts
	SectionIndustryReports
)

// Field 用例中的带标签字段
type Field int

const (
	FieldNone Field = iota
	FieldTitle
	FieldObjective
	FieldApplication
	FieldKeywords
)

// Classification 单行的分类结果
type Classification struct {
	Kind    Kind
	Section Section // KindSectionHeader
	Field   Field   // KindFieldLabel
	// Text 字段值、去掉标记后的条目、竞品名称或原始行
	Text string
}

// Rule 规则表中的一行，Match 命中时返回分类结果
type Rule struct {
	Name  string
	Match func(line string) (Classification, bool)
}

// 用例模板的字段前缀
const (
	prefixUseCase     = "Use Case"
	prefixObjective   = "Objective:"
	prefixApplication = "AI Application:"
	prefixBenefits    = "Cross-Functional Benefits:"
	prefixKeywords    = "Keywords:"
	prefixCompany     = "Company:"
)

var useCaseRules = []Rule{
	{Name: "title", Match: func(line string) (Classification, bool) {
		if !strings.HasPrefix(line, prefixUseCase) {
			return Classification{}, false
		}
		return Classification{Kind: KindFieldLabel, Field: FieldTitle, Text: line}, true
	}},
	fieldRule("objective", prefixObjective, FieldObjective),
	fieldRule("application", prefixApplication, FieldApplication),
	{Name: "benefits", Match: func(line string) (Classification, bool) {
		if !strings.HasPrefix(line, prefixBenefits) {
			return Classification{}, false
		}
		return Classification{Kind: KindSectionHeader, Section: SectionBenefits}, true
	}},
	bulletRule("-"),
	fieldRule("keywords", prefixKeywords, FieldKeywords),
}

var companyRules = []Rule{
	headerRule("offerings", SectionOfferings, "Key offerings", "Offerings:"),
	headerRule("focus_areas", SectionFocusAreas, "Strategic focus", "Focus Areas:"),
	headerRule("vision_goals", SectionVisionGoals, "Vision", "Goals:"),
	headerRule("industry", SectionIndustry, "Industry", "Market segment:"),
	bulletRule("-", "•"),
}

// 通用段落标题先于竞品标题判断，"Industry ...:" 这类行归为段落标题
var competitorRules = []Rule{
	headerRule("market_trends", SectionMarketTrends, "Market trends", "Overview:"),
	headerRule("drivers_challenges", SectionDriversChallenges, "Drivers", "Challenges:"),
	headerRule("forecasts", SectionForecasts, "Forecast", "Growth:"),
	headerRule("industry_reports", SectionIndustryReports, "Industry", "Reports:"),
	{Name: "competitor", Match: func(line string) (Classification, bool) {
		if !strings.HasPrefix(line, prefixCompany) && !strings.HasSuffix(line, ":") {
			return Classification{}, false
		}
		return Classification{Kind: KindCompetitorHeader, Text: competitorName(line)}, true
	}},
	bulletRule("-", "•"),
}

// Rules 返回模板的有序规则表，先命中者生效
func Rules(t Template) []Rule {
	switch t {
	case TemplateUseCase:
		return useCaseRules
	case TemplateCompany:
		return companyRules
	case TemplateCompetitor:
		return competitorRules
	}
	return nil
}

// Classify 判定一行（已 trim、非空）的角色；没有规则命中时为 KindPlainText
func Classify(t Template, line string) Classification {
	for _, r := range Rules(t) {
		if c, ok := r.Match(line); ok {
			return c
		}
	}
	return Classification{Kind: KindPlainText, Text: line}
}

func fieldRule(name, prefix string, field Field) Rule {
	return Rule{Name: name, Match: func(line string) (Classification, bool) {
		if !strings.HasPrefix(line, prefix) {
			return Classification{}, false
		}
		value := strings.TrimSpace(line[len(prefix):])
		return Classification{Kind: KindFieldLabel, Field: field, Text: value}, true
	}}
}

func headerRule(name string, section Section, markers ...string) Rule {
	return Rule{Name: name, Match: func(line string) (Classification, bool) {
		for _, m := range markers {
			if strings.Contains(line, m) {
				return Classification{Kind: KindSectionHeader, Section: section}, true
			}
		}
		return Classification{}, false
	}}
}

func bulletRule(markers ...string) Rule {
	return Rule{Name: "bullet", Match: func(line string) (Classification, bool) {
		for _, m := range markers {
			if rest, ok := strings.CutPrefix(line, m); ok {
				return Classification{Kind: KindBullet, Text: strings.TrimSpace(rest)}, true
			}
		}
		return Classification{}, false
	}}
}

func competitorName(line string) string {
	name := strings.TrimPrefix(line, prefixCompany)
	name = strings.TrimSuffix(name, ":")
	return strings.TrimSpace(name)
}
