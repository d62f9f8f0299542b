package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIResponse_JSON(t *testing.T) {
	resp := OK([]InsightSummary{
		{ID: 2, Word: "second", TotalCount: 20, PositivePct: 56.67},
		{ID: 1, Word: "first", TotalCount: 10},
	}, "ok")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded APIResponse[[]InsightSummary]
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, resp, decoded)
}

func TestAPIResponse_EmptyDataIsArray(t *testing.T) {
	raw, err := json.Marshal(Fail([]InsightSummary{}, "Word parameter is required"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"data":[],"message":"Word parameter is required"}`, string(raw))
}

func TestInsightSummary_FieldNames(t *testing.T) {
	raw, err := json.Marshal(InsightSummary{ID: 1, Word: "w", CreatedAt: "2024-01-01T00:00:00Z"})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, name := range []string{"id", "word", "total_count", "positive_count", "negative_count",
		"neutral_count", "positive_pct", "negative_pct", "neutral_pct", "created_at"} {
		assert.Contains(t, fields, name)
	}
}

func TestCategorySums_Total(t *testing.T) {
	assert.Equal(t, int64(150), CategorySums{Positive: 85, Negative: 50, Neutral: 15}.Total())
}
