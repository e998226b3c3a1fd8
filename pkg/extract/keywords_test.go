package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseCaseKeywords(t *testing.T) {
	raw := `**Use Case 1: Demand Forecasting**
Objective: Predict demand
**Keywords:** forecasting, retail , time series
**Use Case 2: Support Copilot**
Objective: Draft replies
**Keywords:** llm,rag`

	got := UseCaseKeywords(raw)

	require.Len(t, got, 2)
	assert.Equal(t, KeywordEntry{
		Heading:  "Use Case 1: Demand Forecasting",
		Title:    "Demand Forecasting",
		Keywords: []string{"forecasting", "retail", "time series"},
	}, got[0])
	assert.Equal(t, "Support Copilot", got[1].Title)
	assert.Equal(t, []string{"llm", "rag"}, got[1].Keywords)
}

func TestUseCaseKeywords_NeedsBoldMarkers(t *testing.T) {
	assert.Empty(t, UseCaseKeywords("Use Case 1: A\nKeywords: a, b\n"))
	assert.Empty(t, UseCaseKeywords(""))
}

func TestUseCaseKeywords_EmptyKeywordList(t *testing.T) {
	got := UseCaseKeywords("**Use Case 3: Empty**\n**Keywords:** \n")
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Keywords)
}
