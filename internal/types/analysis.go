package types

import (
	"time"

	"github.com/google/uuid"
)

// Submission identifies one uploaded quote and the trade/region context its
// analysis runs under.
type Submission struct {
	ID           uuid.UUID `json:"id"`
	Trade        string    `json:"trade"`
	Subtrade     string    `json:"subtrade,omitempty"`
	RegionKey    string    `json:"region_key"`
	ProjectValue *float64  `json:"project_value,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Analysis is the merged record of one analysis run: the quality/risk report
// and the pricing benchmark report, computed independently and stored
// together.
type Analysis struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submission_id"`

	Report          *ScoreReport           `json:"report,omitempty"`
	PreviewFindings []PreviewFinding       `json:"preview_findings,omitempty"`
	Pricing         *PricingClassification `json:"pricing,omitempty"`
	UnitEstimate    *UnitEstimate          `json:"unit_estimate,omitempty"`
	Benchmark       *BenchmarkRange        `json:"benchmark,omitempty"`

	// Denormalized normalizer output so the next run can take the reuse path.
	UnitBasis          string   `json:"unit_basis,omitempty"`
	NormalizedQuantity *float64 `json:"normalized_quantity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
