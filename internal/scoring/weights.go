// Package scoring converts normalized score inputs into the homeowner-facing
// quality/risk report: five category scores, an overall score and rating, a
// confidence label, and the raw findings the preview classifier consumes.
package scoring

// CategoryWeights defines one category's linear score formula:
//
//	score = Base + ClarityWeight*clarity + DocWeight*doc − PenaltyWeight*penalty
//
// where clarity/doc are the quality fractions scaled to 0..100 and penalty is
// the capped signal penalty for the category's signal source.
type CategoryWeights struct {
	Base          float64
	ClarityWeight float64
	DocWeight     float64
	PenaltyWeight float64
	SignalCap     int
}

// Weights is the full scoring configuration. It exists as a named struct so
// tests can substitute alternate weights without touching the algorithm.
type Weights struct {
	Labor     CategoryWeights
	Materials CategoryWeights
	Scope     CategoryWeights
	Warranty  CategoryWeights
	Timeline  CategoryWeights

	// Overall-score blend. The five category weights plus the two quality
	// weights sum to 1.
	OverallLabor     float64
	OverallMaterials float64
	OverallScope     float64
	OverallWarranty  float64
	OverallTimeline  float64
	OverallDoc       float64
	OverallClarity   float64

	// MaxPenalty is the penalty applied when a signal count saturates its cap.
	MaxPenalty float64
}

// DefaultWeights returns the production scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		Labor:     CategoryWeights{Base: 50, ClarityWeight: 0.35, DocWeight: 0.15, PenaltyWeight: 0.35, SignalCap: 6},
		Materials: CategoryWeights{Base: 45, ClarityWeight: 0.30, DocWeight: 0.20, PenaltyWeight: 0.55, SignalCap: 6},
		Scope:     CategoryWeights{Base: 40, ClarityWeight: 0.40, DocWeight: 0.10, PenaltyWeight: 0.80, SignalCap: 5},
		Warranty:  CategoryWeights{Base: 55, ClarityWeight: 0.15, DocWeight: 0.25, PenaltyWeight: 1.0, SignalCap: 4},
		Timeline:  CategoryWeights{Base: 55, ClarityWeight: 0.20, DocWeight: 0.20, PenaltyWeight: 0.90, SignalCap: 4},

		OverallLabor:     0.20,
		OverallMaterials: 0.20,
		OverallScope:     0.25,
		OverallWarranty:  0.20,
		OverallTimeline:  0.10,
		OverallDoc:       0.025,
		OverallClarity:   0.025,

		MaxPenalty: 45,
	}
}
