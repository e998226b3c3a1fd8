package extract

import "github.com/iWorld-y/site_radar/pkg/model"

// UseCaseState 用例解析器的状态
type UseCaseState int

const (
	StateNoRecord UseCaseState = iota
	StateBuildingRecord
	StateAccumulatingBenefits
)

func (s UseCaseState) String() string {
	switch s {
	case StateNoRecord:
		return "no_record"
	case StateBuildingRecord:
		return "building_record"
	case StateAccumulatingBenefits:
		return "accumulating_benefits"
	}
	return "unknown"
}

var useCaseTransitions = transitionTable[*UseCaseParser, UseCaseState]{
	StateNoRecord: {
		KindFieldLabel: (*UseCaseParser).onLabel,
	},
	StateBuildingRecord: {
		KindFieldLabel:    (*UseCaseParser).onLabel,
		KindSectionHeader: (*UseCaseParser).onBenefits,
	},
	StateAccumulatingBenefits: {
		KindFieldLabel:    (*UseCaseParser).onLabel,
		KindSectionHeader: (*UseCaseParser).onBenefits,
		KindBullet:        (*UseCaseParser).onBenefit,
	},
}

// UseCaseParser 把用例列表文本归约为 []model.UseCase
type UseCaseParser struct {
	state   UseCaseState
	current *model.UseCase
	out     []model.UseCase
}

func NewUseCaseParser() *UseCaseParser {
	return &UseCaseParser{out: []model.UseCase{}}
}

func (p *UseCaseParser) Template() Template { return TemplateUseCase }

func (p *UseCaseParser) State() UseCaseState { return p.state }

func (p *UseCaseParser) Feed(c Classification) {
	p.state = useCaseTransitions.fire(p, p.state, c)
}

// Result 提交尚未结束的用例并返回全部结果
func (p *UseCaseParser) Result() []model.UseCase {
	p.commit()
	p.state = StateNoRecord
	return p.out
}

func (p *UseCaseParser) onLabel(c Classification) UseCaseState {
	if c.Field == FieldTitle {
		p.commit()
		p.current = &model.UseCase{Title: c.Text}
		return StateBuildingRecord
	}
	if p.current == nil {
		return p.state
	}
	switch c.Field {
	case FieldObjective:
		p.current.Objective = c.Text
	case FieldApplication:
		p.current.Application = c.Text
	case FieldKeywords:
		p.current.Keywords = c.Text
	}
	return p.state
}

func (p *UseCaseParser) onBenefits(c Classification) UseCaseState {
	if c.Section != SectionBenefits {
		return p.state
	}
	p.current.Benefits = []string{}
	return StateAccumulatingBenefits
}

func (p *UseCaseParser) onBenefit(c Classification) UseCaseState {
	p.current.Benefits = append(p.current.Benefits, c.Text)
	return p.state
}

func (p *UseCaseParser) commit() {
	if p.current == nil {
		return
	}
	if p.current.Title != "" {
		uc := *p.current
		if uc.Benefits == nil {
			uc.Benefits = []string{}
		}
		p.out = append(p.out, uc)
	}
	p.current = nil
}
