package analyzer

import (
	"math"

	"github.com/mcncl/gotoon/internal/models"
	"github.com/mcncl/gotoon/internal/toon"
)

// Report describes the shape of a value and how its arrays will be written
type Report struct {
	Objects  int
	Arrays   int
	Scalars  int
	Fields   int
	MaxDepth int
	Forms    map[toon.ArrayForm]int
	// Size is set once the JSON and TOON renderings are known
	Size *Savings
}

// Savings compares the JSON and TOON renderings of the same value
type Savings struct {
	JSONBytes  int
	ToonBytes  int
	JSONTokens int
	ToonTokens int
	Percent    float64
}

// Analyzer walks values and collects a Report
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks v and returns its Report
func (a *Analyzer) Analyze(v models.Value) Report {
	report := Report{Forms: map[toon.ArrayForm]int{}}
	report.MaxDepth = a.walk(&report, v)
	return report
}

// walk counts v into report and returns its nesting depth. Scalars have
// depth 0 and every container adds one.
func (a *Analyzer) walk(report *Report, v models.Value) int {
	switch v.Kind() {
	case models.KindObject:
		report.Objects++
		deepest := 0
		for _, m := range v.Object().Members() {
			report.Fields++
			if d := a.walk(report, m.Value); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	case models.KindArray:
		report.Arrays++
		items := v.Items()
		report.Forms[toon.ClassifyArray(items)]++
		deepest := 0
		for _, item := range items {
			if d := a.walk(report, item); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	default:
		report.Scalars++
		return 0
	}
}

// EstimateTokens approximates the token count of s for GPT-style tokenizers
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// CompareSizes measures how much smaller toonText is than jsonText
func CompareSizes(jsonText, toonText string) Savings {
	s := Savings{
		JSONBytes:  len(jsonText),
		ToonBytes:  len(toonText),
		JSONTokens: EstimateTokens(jsonText),
		ToonTokens: EstimateTokens(toonText),
	}
	if s.JSONTokens > 0 {
		s.Percent = float64(s.JSONTokens-s.ToonTokens) / float64(s.JSONTokens) * 100
	}
	return s
}

// Value renders the report as a value so it can be written in any format
func (r Report) Value() models.Value {
	forms := models.NewObjectFrom(
		models.Member{Key: toon.FormTabular.String(), Value: models.Int(int64(r.Forms[toon.FormTabular]))},
		models.Member{Key: toon.FormInline.String(), Value: models.Int(int64(r.Forms[toon.FormInline]))},
		models.Member{Key: toon.FormList.String(), Value: models.Int(int64(r.Forms[toon.FormList]))},
		models.Member{Key: toon.FormEmpty.String(), Value: models.Int(int64(r.Forms[toon.FormEmpty]))},
	)

	out := models.NewObjectFrom(
		models.Member{Key: "objects", Value: models.Int(int64(r.Objects))},
		models.Member{Key: "arrays", Value: models.Int(int64(r.Arrays))},
		models.Member{Key: "scalars", Value: models.Int(int64(r.Scalars))},
		models.Member{Key: "fields", Value: models.Int(int64(r.Fields))},
		models.Member{Key: "max_depth", Value: models.Int(int64(r.MaxDepth))},
		models.Member{Key: "array_forms", Value: models.ObjectValue(forms)},
	)

	if r.Size != nil {
		out.Set("size", models.ObjectValue(models.NewObjectFrom(
			models.Member{Key: "json_bytes", Value: models.Int(int64(r.Size.JSONBytes))},
			models.Member{Key: "toon_bytes", Value: models.Int(int64(r.Size.ToonBytes))},
			models.Member{Key: "json_tokens", Value: models.Int(int64(r.Size.JSONTokens))},
			models.Member{Key: "toon_tokens", Value: models.Int(int64(r.Size.ToonTokens))},
			models.Member{Key: "savings_percent", Value: models.Float(math.Round(r.Size.Percent*10) / 10)},
		)))
	}
	return models.ObjectValue(out)
}
