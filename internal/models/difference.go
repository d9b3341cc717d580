package models

// Severity grades a detected difference between two package images.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Difference is one finding of an integrity check.
type Difference struct {
	Location    string   `json:"location"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence,omitempty"`
}
