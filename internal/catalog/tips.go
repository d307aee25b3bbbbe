package catalog

// TipType classifies an improvement tip
type TipType string

// Tip types
const (
	TipUX      TipType = "ux"
	TipClarity TipType = "clarity"
	TipATS     TipType = "ats"
)

// Severity ranks how much a tip matters
type Severity string

// Severities
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Tip is a resume improvement suggestion card. Tips are static; they are not
// generated from the enhancement response.
type Tip struct {
	ID          string   `json:"id"`
	Type        TipType  `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

var staticTips = []Tip{
	{
		ID:          "1",
		Type:        TipATS,
		Title:       "Add more technical keywords",
		Description: "Include specific technologies mentioned in the job description like React, TypeScript, and AWS.",
		Severity:    SeverityHigh,
	},
	{
		ID:          "2",
		Type:        TipClarity,
		Title:       "Quantify achievements",
		Description: `Add specific metrics to your accomplishments, e.g., "Improved performance by 40%" instead of "Improved performance".`,
		Severity:    SeverityMedium,
	},
	{
		ID:          "3",
		Type:        TipUX,
		Title:       "Optimize section order",
		Description: "Move your technical skills section higher up since it's highly relevant to this role.",
		Severity:    SeverityLow,
	},
	{
		ID:          "4",
		Type:        TipATS,
		Title:       "Match job title format",
		Description: `Use "Senior Software Engineer" instead of "Sr. Software Dev" to match the job posting exactly.`,
		Severity:    SeverityHigh,
	},
}

// StaticTips returns a copy of the built-in tips in display order
func StaticTips() []Tip {
	out := make([]Tip, len(staticTips))
	copy(out, staticTips)
	return out
}
