package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAiResult_CurrentSchema(t *testing.T) {
	payload := `{
		"signals": {"pricing_outliers": 2, "missing_scope": 1, "warranty_red_flags": 0, "timeline_red_flags": 1},
		"quality": {"doc_quality": 0.8, "line_item_clarity": 0.7},
		"findings": ["Deposit of 50% requested up front"],
		"deposit_percent": 50
	}`

	assert.NoError(t, ValidateAiResult(payload))
}

func TestValidateAiResult_LegacySchema(t *testing.T) {
	payload := `{
		"confidence": "medium",
		"scope": {"missing_or_unclear": ["permits", "disposal"]},
		"costs": {"high_cost_flags": ["labor"], "total": 9460},
		"red_flags": [{"title": "Limited warranty", "detail": "1 year only"}],
		"timeline": {"clarity": "basic"}
	}`

	assert.NoError(t, ValidateAiResult(payload))
}

func TestValidateAiResult_EmptyObjectIsValid(t *testing.T) {
	// Every field is optional; defaults are supplied downstream.
	assert.NoError(t, ValidateAiResult(`{}`))
}

func TestValidateAiResult_WrongTypesRejected(t *testing.T) {
	payload := `{"quality": {"doc_quality": "very good"}}`

	err := ValidateAiResult(payload)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateAiResult_QualityOutOfRangeRejected(t *testing.T) {
	err := ValidateAiResult(`{"quality": {"doc_quality": 1.5}}`)
	assert.Error(t, err)
}

func TestValidateAiResult_MalformedJSON(t *testing.T) {
	err := ValidateAiResult(`{not json`)
	require.Error(t, err)

	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}
