package matching

import (
	"testing"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreBucket(t *testing.T) {
	cases := map[float64]string{
		100: "90-100", 90: "90-100", 89.99: "80-89", 80: "80-89",
		75: "70-79", 60: "60-69", 50: "50-59", 49.9: "0-49", 0: "0-49",
	}
	for score, want := range cases {
		assert.Equal(t, want, ScoreBucket(score), "score %v", score)
	}
}

func TestReview(t *testing.T) {
	m := Match{Status: MatchStatusPending}

	assert.Error(t, m.Review(MatchStatusPending, "u1"))
	assert.Error(t, m.Review("archived", "u1"))
	assert.Nil(t, m.ReviewedBy)

	require.NoError(t, m.Review(MatchStatusApproved, "u1"))
	assert.Equal(t, MatchStatusApproved, m.Status)
	require.NotNil(t, m.ReviewedBy)
	assert.EqualValues(t, "u1", *m.ReviewedBy)
	assert.NotNil(t, m.ReviewedAt)
}

func TestBreakdownColumn(t *testing.T) {
	in := Breakdown(scoring.ScoreBreakdown{SkillsMatch: 50, OverallScore: 61.25})
	raw, err := in.Value()
	require.NoError(t, err)

	var out Breakdown
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(nil))
	assert.Equal(t, Breakdown{}, out)
	assert.Error(t, out.Scan(42))
}
