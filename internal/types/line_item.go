package types

// LineItemRow is one extracted quote line item. Rows are owned by the
// persistence layer; the analysis core treats them as read-only and
// tolerates any subset of fields being absent.
type LineItemRow struct {
	DescriptionRaw        string   `json:"description_raw,omitempty"`
	DescriptionNormalized string   `json:"description_normalized,omitempty"`
	Quantity              *float64 `json:"quantity,omitempty"`
	Unit                  string   `json:"unit,omitempty"`
	UnitPrice             *float64 `json:"unit_price,omitempty"`
	LineTotal             *float64 `json:"line_total,omitempty"`
	Category              string   `json:"category,omitempty"`
	SortOrder             int      `json:"sort_order,omitempty"`
}
