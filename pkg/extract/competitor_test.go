package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetitors_SectionThenCompany(t *testing.T) {
	got := Competitors("Market trends\n- AI rising\nCompany: Acme\n- Product X\n- Product Y\n")

	assert.Equal(t, []string{"AI rising"}, got.MarketTrends)
	assert.Equal(t, []string{"Acme"}, got.CompetitorNames())
	assert.Equal(t, []string{"Product X", "Product Y"}, got.CompetitorDetails("Acme"))
	assert.Empty(t, got.DriversChallenges)
	assert.Empty(t, got.Forecasts)
	assert.Empty(t, got.IndustryReports)
}

func TestCompetitors_FullDocument(t *testing.T) {
	input := `**Globex:**
- Cloud ERP
Offers a marketplace.
**Company: Initech**
• Payroll suite

**1. Overview:**
- Generative AI adoption is accelerating
**2. Drivers and Challenges**
- Cheaper compute
- Talent shortage
**3. Forecast and Growth Potential**
Market expected to triple by 2030.
**4. Industry Reports**
- McKinsey: The state of AI
`
	got := Competitors(input)

	assert.Equal(t, []string{"Globex", "Initech"}, got.CompetitorNames())
	assert.Equal(t, []string{"Cloud ERP", "Offers a marketplace."}, got.CompetitorDetails("Globex"))
	assert.Equal(t, []string{"Payroll suite"}, got.CompetitorDetails("Initech"))
	assert.Equal(t, []string{"Generative AI adoption is accelerating"}, got.MarketTrends)
	assert.Equal(t, []string{"Cheaper compute", "Talent shortage"}, got.DriversChallenges)
	assert.Equal(t, []string{"Market expected to triple by 2030."}, got.Forecasts)
	assert.Equal(t, []string{"McKinsey: The state of AI"}, got.IndustryReports)
}

func TestCompetitors_SectionHeaderEndsCompetitorMode(t *testing.T) {
	got := Competitors("Company: Acme\n- a\nForecast\n- f\n")

	assert.Equal(t, []string{"a"}, got.CompetitorDetails("Acme"))
	assert.Equal(t, []string{"f"}, got.Forecasts)
}

func TestCompetitors_CompanyKeepsSectionCursor(t *testing.T) {
	p := NewCompetitorParser()
	Run[any](anyParser{p}, "Drivers\n- d\nCompany: Acme\n")

	assert.Equal(t, SectionDriversChallenges, p.ActiveSection())
	name, ok := p.ActiveCompetitor()
	assert.True(t, ok)
	assert.Equal(t, "Acme", name)
}

func TestCompetitors_RedeclaredCompetitorResetsButKeepsPosition(t *testing.T) {
	got := Competitors("Company: A\n- a1\nCompany: B\n- b1\nCompany: A\n- a2\n")

	assert.Equal(t, []string{"A", "B"}, got.CompetitorNames())
	assert.Equal(t, []string{"a2"}, got.CompetitorDetails("A"))
	assert.Equal(t, []string{"b1"}, got.CompetitorDetails("B"))
}

func TestCompetitors_PlainTextWithoutSectionIsDropped(t *testing.T) {
	got := Competitors("Just prose\n- stray\n")

	assert.Equal(t, 0, got.Competitors.Len())
	assert.Empty(t, got.MarketTrends)
}

func TestCompetitors_ColonSentenceBecomesCompetitor(t *testing.T) {
	got := Competitors("Market trends\n- x\nThe leading vendors are:\n- y\n")

	assert.Equal(t, []string{"x"}, got.MarketTrends)
	assert.Equal(t, []string{"The leading vendors are"}, got.CompetitorNames())
	assert.Equal(t, []string{"y"}, got.CompetitorDetails("The leading vendors are"))
}

func TestCompetitors_BlankNameIsNotACompetitor(t *testing.T) {
	got := Competitors("Market trends\n- a\nCompany:\n- b\n")

	assert.Equal(t, 0, got.Competitors.Len())
	assert.Equal(t, []string{"a", "b"}, got.MarketTrends)

	got = Competitors("Company: Acme\n- x\n:\n- y\nForecast\n- f\n")
	assert.Equal(t, []string{"Acme"}, got.CompetitorNames())
	assert.Equal(t, []string{"x"}, got.CompetitorDetails("Acme"))
	assert.Equal(t, []string{"f"}, got.Forecasts)
}

func TestCompetitors_EmptyInput(t *testing.T) {
	got := Competitors("")
	require.NotNil(t, got.Competitors)
	assert.Equal(t, 0, got.Competitors.Len())
	assert.NotNil(t, got.MarketTrends)
}

func TestCompetitors_JSONKeepsOrder(t *testing.T) {
	got := Competitors("Company: Zeta\n- z\nCompany: Alpha\n- a\n")

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"competitors":{"Zeta":["z"],"Alpha":["a"]}`)
}

func TestCompetitorTransitions(t *testing.T) {
	section := Classification{Kind: KindSectionHeader, Section: SectionMarketTrends}
	company := Classification{Kind: KindCompetitorHeader, Text: "Acme"}
	plain := Classification{Kind: KindPlainText, Text: "p"}

	p := NewCompetitorParser()
	p.Feed(plain)
	assert.Equal(t, StateIdle, p.State())
	p.Feed(section)
	assert.Equal(t, StateInAmbientSection, p.State())
	p.Feed(company)
	assert.Equal(t, StateInCompetitor, p.State())
	p.Feed(plain)
	assert.Equal(t, StateInCompetitor, p.State())
	p.Feed(section)
	assert.Equal(t, StateInAmbientSection, p.State())
	_, ok := p.ActiveCompetitor()
	assert.False(t, ok)

	assert.False(t, competitorTransitions.handles(StateIdle, KindPlainText))
	assert.True(t, competitorTransitions.handles(StateIdle, KindCompetitorHeader))
	assert.True(t, competitorTransitions.handles(StateInCompetitor, KindPlainText))
}

// anyParser 把具体解析器适配为 Parser[any]，便于在测试里检查游标
type anyParser struct{ p *CompetitorParser }

func (a anyParser) Template() Template    { return a.p.Template() }
func (a anyParser) Feed(c Classification) { a.p.Feed(c) }
func (a anyParser) Result() any           { return nil }
