package types

// Severity labels for preview findings.
const (
	SeverityPositive = "positive"
	SeverityWarning  = "warning"
	SeverityRisk     = "risk"
)

// PreviewFinding is a short, severity-tagged, homeowner-facing sentence
// surfaced before or without unlocking a full report.
type PreviewFinding struct {
	Text     string `json:"text"`
	Severity string `json:"severity"`
}
