package extract

import "github.com/iWorld-y/site_radar/pkg/model"

// CompetitorState 竞品分析解析器的状态
type CompetitorState int

const (
	StateIdle CompetitorState = iota
	StateInAmbientSection
	StateInCompetitor
)

func (s CompetitorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInAmbientSection:
		return "in_section"
	case StateInCompetitor:
		return "in_competitor"
	}
	return "unknown"
}

var competitorTransitions = transitionTable[*CompetitorParser, CompetitorState]{
	StateIdle: {
		KindSectionHeader:    (*CompetitorParser).onHeader,
		KindCompetitorHeader: (*CompetitorParser).onCompetitor,
		KindBullet:           (*CompetitorParser).onLine,
	},
	StateInAmbientSection: {
		KindSectionHeader:    (*CompetitorParser).onHeader,
		KindCompetitorHeader: (*CompetitorParser).onCompetitor,
		KindBullet:           (*CompetitorParser).onLine,
		KindPlainText:        (*CompetitorParser).onLine,
	},
	StateInCompetitor: {
		KindSectionHeader:    (*CompetitorParser).onHeader,
		KindCompetitorHeader: (*CompetitorParser).onCompetitor,
		KindBullet:           (*CompetitorParser).onLine,
		KindPlainText:        (*CompetitorParser).onLine,
	},
}

// CompetitorParser 把市场/竞品分析文本归约为 model.CompetitorAnalysis。
// 段落游标与竞品游标相互独立：竞品标题只移动竞品游标。
type CompetitorParser struct {
	state      CompetitorState
	section    Section
	competitor string
	inCompetitor bool
	buffer       []string
	result       model.CompetitorAnalysis
}

func NewCompetitorParser() *CompetitorParser {
	return &CompetitorParser{result: model.NewCompetitorAnalysis()}
}

func (p *CompetitorParser) Template() Template { return TemplateCompetitor }

func (p *CompetitorParser) State() CompetitorState { return p.state }

func (p *CompetitorParser) ActiveSection() Section { return p.section }

// ActiveCompetitor 当前竞品游标，ok 为 false 表示没有
func (p *CompetitorParser) ActiveCompetitor() (string, bool) {
	return p.competitor, p.inCompetitor
}

func (p *CompetitorParser) Feed(c Classification) {
	p.state = competitorTransitions.fire(p, p.state, c)
}

func (p *CompetitorParser) Result() model.CompetitorAnalysis {
	p.commit()
	return p.result
}

// onHeader 任何段落标题都会结束竞品模式
func (p *CompetitorParser) onHeader(c Classification) CompetitorState {
	p.commit()
	p.competitor, p.inCompetitor = "", false
	p.section = c.Section
	return StateInAmbientSection
}

// onCompetitor 名称为空（如单独的 "Company:"）时只清除竞品游标，
// 后续行回到当前段落
func (p *CompetitorParser) onCompetitor(c Classification) CompetitorState {
	if c.Text == "" {
		p.competitor, p.inCompetitor = "", false
		if p.section == SectionNone {
			return StateIdle
		}
		return StateInAmbientSection
	}
	if !p.inCompetitor {
		p.commit()
	}
	p.result.Competitors.Set(c.Text, []string{})
	p.competitor, p.inCompetitor = c.Text, true
	return StateInCompetitor
}

func (p *CompetitorParser) onLine(c Classification) CompetitorState {
	if p.inCompetitor {
		details, _ := p.result.Competitors.Get(p.competitor)
		p.result.Competitors.Set(p.competitor, append(details, c.Text))
		return p.state
	}
	p.buffer = append(p.buffer, c.Text)
	return p.state
}

func (p *CompetitorParser) commit() {
	defer func() { p.buffer = nil }()
	if len(p.buffer) == 0 {
		return
	}
	var dst *[]string
	switch p.section {
	case SectionMarketTrends:
		dst = &p.result.MarketTrends
	case SectionDriversChallenges:
		dst = &p.result.DriversChallenges
	case SectionForecasts:
		dst = &p.result.Forecasts
	case SectionIndustryReports:
		dst = &p.result.IndustryReports
	default:
		return
	}
	*dst = p.buffer
}
