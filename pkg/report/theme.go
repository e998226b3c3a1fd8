package report

// RGB 文字颜色
type RGB struct {
	R, G, B int
}

// Style 段落样式，尺寸单位均为 pt
type Style struct {
	Size       float64
	Leading    float64
	SpaceAfter float64
	Indent     float64
	Color      RGB
	Bold       bool
}

// Theme 报告排版参数。渲染函数只读取，不修改。
type Theme struct {
	Font   string
	Margin float64

	MainHeading     Style
	UseCaseTitle    Style
	SectionHeading  Style
	AnalysisSection Style
	CompanyName     Style
	Body            Style
	BenefitText     Style
	AnalysisList    Style
	Keywords        Style

	SectionGap float64 // 分析小节之间
	UseCaseGap float64 // 用例之间
	ReportGap  float64 // 公司分析与竞品分析之间
	CompanyGap float64 // 竞品之间
}

var (
	black     = RGB{0, 0, 0}
	navy      = RGB{0x1B, 0x4F, 0x72}
	blue      = RGB{0x28, 0x74, 0xA6}
	lightBlue = RGB{0x2E, 0x86, 0xC1}
	slate     = RGB{0x56, 0x65, 0x73}
)

// DefaultTheme 每次返回一份新的默认主题
func DefaultTheme() *Theme {
	return &Theme{
		Font:   "Helvetica",
		Margin: 72,

		MainHeading:     Style{Size: 20, Leading: 24, SpaceAfter: 30, Color: navy, Bold: true},
		UseCaseTitle:    Style{Size: 16, Leading: 20, SpaceAfter: 15, Color: blue, Bold: true},
		SectionHeading:  Style{Size: 12, Leading: 16, SpaceAfter: 10, Color: lightBlue, Bold: true},
		AnalysisSection: Style{Size: 14, Leading: 18, SpaceAfter: 12, Color: blue, Bold: true},
		CompanyName:     Style{Size: 12, Leading: 16, SpaceAfter: 8, Color: slate, Bold: true},
		Body:            Style{Size: 10, Leading: 12, SpaceAfter: 6, Color: black},
		BenefitText:     Style{Size: 11, Leading: 14, SpaceAfter: 6, Indent: 20, Color: black},
		AnalysisList:    Style{Size: 11, Leading: 14, SpaceAfter: 6, Indent: 20, Color: black},
		Keywords:        Style{Size: 11, Leading: 14, SpaceAfter: 20, Color: slate},

		SectionGap: 12,
		UseCaseGap: 20,
		ReportGap:  30,
		CompanyGap: 8,
	}
}
