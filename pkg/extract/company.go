package extract

import "github.com/iWorld-y/site_radar/pkg/model"

// CompanyState 公司分析解析器的状态
type CompanyState int

const (
	StateNoSection CompanyState = iota
	StateInSection
)

func (s CompanyState) String() string {
	if s == StateInSection {
		return "in_section"
	}
	return "no_section"
}

var companyTransitions = transitionTable[*CompanyParser, CompanyState]{
	StateNoSection: {
		KindSectionHeader: (*CompanyParser).onHeader,
		KindBullet:        (*CompanyParser).onLine,
	},
	StateInSection: {
		KindSectionHeader: (*CompanyParser).onHeader,
		KindBullet:        (*CompanyParser).onLine,
		KindPlainText:     (*CompanyParser).onLine,
	},
}

// CompanyParser 把公司分析文本归约为 model.CompanyAnalysis
type CompanyParser struct {
	state   CompanyState
	section Section
	buffer  []string
	result  model.CompanyAnalysis
}

func NewCompanyParser() *CompanyParser {
	return &CompanyParser{result: model.NewCompanyAnalysis()}
}

func (p *CompanyParser) Template() Template { return TemplateCompany }

func (p *CompanyParser) State() CompanyState { return p.state }

// ActiveSection 当前接收内容的段落
func (p *CompanyParser) ActiveSection() Section { return p.section }

func (p *CompanyParser) Feed(c Classification) {
	p.state = companyTransitions.fire(p, p.state, c)
}

func (p *CompanyParser) Result() model.CompanyAnalysis {
	p.commit()
	return p.result
}

// onHeader 先把缓冲提交到切换前的段落，再切换
func (p *CompanyParser) onHeader(c Classification) CompanyState {
	p.commit()
	p.section = c.Section
	return StateInSection
}

func (p *CompanyParser) onLine(c Classification) CompanyState {
	p.buffer = append(p.buffer, c.Text)
	return p.state
}

func (p *CompanyParser) commit() {
	defer func() { p.buffer = nil }()
	if len(p.buffer) == 0 {
		return
	}
	var dst *[]string
	switch p.section {
	case SectionOfferings:
		dst = &p.result.Offerings
	case SectionFocusAreas:
		dst = &p.result.FocusAreas
	case SectionVisionGoals:
		dst = &p.result.VisionGoals
	case SectionIndustry:
		dst = &p.result.Industry
	default:
		return
	}
	*dst = p.buffer
}
