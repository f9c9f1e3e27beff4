package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	engine := NewEngine()

	base := CandidateProfile{
		FirstName:   "Ana",
		LastName:    "Souza",
		Email:       "ana@example.com",
		Phone:       "+55 11 99999-0000",
		LinkedInURL: "https://linkedin.com/in/ana",
	}

	tests := []struct {
		name string
		a, b CandidateProfile
		want float64
	}{
		{
			"email only",
			CandidateProfile{Email: "ana@example.com", FirstName: "Ana"},
			CandidateProfile{Email: "ANA@example.com", FirstName: "Bruna"},
			0.4,
		},
		{
			"email and linkedin",
			CandidateProfile{Email: "ana@example.com", LinkedInURL: "https://linkedin.com/in/ana", FirstName: "A"},
			CandidateProfile{Email: "ana@example.com", LinkedInURL: "https://LinkedIn.com/in/ana", FirstName: "B"},
			0.7,
		},
		{
			"email and name",
			CandidateProfile{Email: "ana@example.com", FirstName: "Ana", LastName: "Souza"},
			CandidateProfile{Email: "ana@example.com", FirstName: "ana", LastName: "SOUZA"},
			0.6,
		},
		{
			"email linkedin and name",
			CandidateProfile{Email: "ana@example.com", FirstName: "Ana", LastName: "Souza", LinkedInURL: "li/ana"},
			CandidateProfile{Email: "ana@example.com", FirstName: "Ana", LastName: "Souza", LinkedInURL: "li/ana"},
			0.9,
		},
		{"identical records", base, base, 1.0},
		{
			"phone compares digits only",
			CandidateProfile{Phone: "(11) 99999-0000"},
			CandidateProfile{Phone: "11 999990000"},
			0.7,
		},
		{
			"empty email and name compare equal",
			CandidateProfile{},
			CandidateProfile{},
			0.6,
		},
		{
			"one-sided linkedin and phone",
			CandidateProfile{LinkedInURL: "li/ana", Phone: "123"},
			CandidateProfile{},
			0.6,
		},
		{
			"no email with linkedin and phone",
			CandidateProfile{FirstName: "Ana", LinkedInURL: "li/ana", Phone: "123"},
			CandidateProfile{FirstName: "Bia", LinkedInURL: "li/ana", Phone: "123"},
			0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Similarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.InDelta(t, got, engine.Similarity(tt.b, tt.a), 1e-9)
		})
	}
}

func TestDetectDuplicateCandidates_DefaultThreshold(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name    string
		a, b    CandidateProfile
		grouped bool
	}{
		{
			"email only is not enough",
			CandidateProfile{ID: "1", Email: "ana@example.com", FirstName: "Ana"},
			CandidateProfile{ID: "2", Email: "ana@example.com", FirstName: "Bia"},
			false,
		},
		{
			"email and linkedin are not enough",
			CandidateProfile{ID: "1", Email: "ana@example.com", LinkedInURL: "li/ana", FirstName: "Ana"},
			CandidateProfile{ID: "2", Email: "ana@example.com", LinkedInURL: "li/ana", FirstName: "Bia"},
			false,
		},
		{
			"email and name are not enough",
			CandidateProfile{ID: "1", Email: "ana@example.com", FirstName: "Ana", LastName: "Souza"},
			CandidateProfile{ID: "2", Email: "ana@example.com", FirstName: "Ana", LastName: "Souza"},
			false,
		},
		{
			"email linkedin and name group",
			CandidateProfile{ID: "1", Email: "ana@example.com", LinkedInURL: "li/ana", FirstName: "Ana", LastName: "Souza"},
			CandidateProfile{ID: "2", Email: "ana@example.com", LinkedInURL: "li/ana", FirstName: "Ana", LastName: "Souza"},
			true,
		},
		{
			"no email with name linkedin and phone group",
			CandidateProfile{ID: "1", FirstName: "Ana", LastName: "Souza", LinkedInURL: "li/ana", Phone: "555-1234"},
			CandidateProfile{ID: "2", FirstName: "Ana", LastName: "Souza", LinkedInURL: "li/ana", Phone: "5551234"},
			true,
		},
		{
			"no email and different names stay apart",
			CandidateProfile{ID: "1", FirstName: "Ana", LinkedInURL: "li/ana"},
			CandidateProfile{ID: "2", FirstName: "Bia", LinkedInURL: "li/ana"},
			false,
		},
		{
			"email linkedin and phone reach the threshold exactly",
			CandidateProfile{ID: "1", Email: "ana@example.com", LinkedInURL: "li/ana", Phone: "555-1234", FirstName: "Ana"},
			CandidateProfile{ID: "2", Email: "ana@example.com", LinkedInURL: "li/ana", Phone: "5551234", FirstName: "Bia"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := engine.DetectDuplicateCandidates([]CandidateProfile{tt.a, tt.b}, DefaultDuplicateThreshold)
			if !tt.grouped {
				assert.Empty(t, groups)
				return
			}
			require.Len(t, groups, 1)
			assert.Equal(t, []string{"1", "2"}, groups[0].IDs())
		})
	}
}

func TestDetectDuplicateCandidates_Greedy(t *testing.T) {
	engine := NewEngine()

	// A~B (email+name = 0.6) and B~C (linkedin+phone = 0.4), A and C share
	// nothing. At threshold 0.4 A anchors {A, B}; C is left alone because B
	// is already processed and only anchors scan forward.
	a := CandidateProfile{ID: "A", Email: "x@example.com", FirstName: "Ana", LastName: "Lima"}
	b := CandidateProfile{ID: "B", Email: "x@example.com", FirstName: "Ana", LastName: "Lima", LinkedInURL: "li/b", Phone: "999"}
	c := CandidateProfile{ID: "C", FirstName: "Carla", LinkedInURL: "li/b", Phone: "999"}

	t.Run("not a transitive closure", func(t *testing.T) {
		groups := engine.DetectDuplicateCandidates([]CandidateProfile{a, b, c}, 0.4)
		require.Len(t, groups, 1)
		assert.Equal(t, []string{"A", "B"}, groups[0].IDs())
	})

	t.Run("input order changes the partition", func(t *testing.T) {
		groups := engine.DetectDuplicateCandidates([]CandidateProfile{b, c, a}, 0.4)
		require.Len(t, groups, 1)
		assert.Equal(t, []string{"B", "C", "A"}, groups[0].IDs())
	})

	t.Run("anchor without a match stays ungrouped", func(t *testing.T) {
		groups := engine.DetectDuplicateCandidates([]CandidateProfile{c, a, b}, 0.5)
		require.Len(t, groups, 1)
		assert.Equal(t, []string{"A", "B"}, groups[0].IDs())
	})

	t.Run("multiple groups keep input order", func(t *testing.T) {
		d1 := CandidateProfile{ID: "D1", Email: "d@example.com", FirstName: "Dan", LastName: "Ng", LinkedInURL: "li/d"}
		d2 := d1
		d2.ID = "D2"
		e1 := CandidateProfile{ID: "E1", Email: "e@example.com", FirstName: "Eva", LastName: "Ro", LinkedInURL: "li/e"}
		e2 := e1
		e2.ID = "E2"
		d3 := d1
		d3.ID = "D3"

		groups := engine.DetectDuplicateCandidates([]CandidateProfile{d1, e1, d2, e2, d3}, 0)
		require.Len(t, groups, 2)
		assert.Equal(t, []string{"D1", "D2", "D3"}, groups[0].IDs())
		assert.Equal(t, []string{"E1", "E2"}, groups[1].IDs())
	})
}

func TestDetectDuplicateCandidates_EdgeCases(t *testing.T) {
	engine := NewEngine()

	assert.Empty(t, engine.DetectDuplicateCandidates(nil, 0.8))
	assert.Empty(t, engine.DetectDuplicateCandidates([]CandidateProfile{{ID: "solo"}}, 0.8))
	assert.Empty(t, engine.DetectDuplicateCandidates([]CandidateProfile{{ID: "1"}, {ID: "2"}}, 0.8))
}

func TestCustomSimilarityWeights(t *testing.T) {
	engine := NewEngine(
		WithSimilarityWeights(SimilarityWeights{Email: 0.9, Name: 0.05, LinkedIn: 0.025, Phone: 0.025}),
		WithDuplicateThreshold(0.85),
	)
	assert.Equal(t, 0.85, engine.DuplicateThreshold())

	a := CandidateProfile{ID: "1", Email: "same@example.com", FirstName: "A"}
	b := CandidateProfile{ID: "2", Email: "same@example.com", FirstName: "B"}
	groups := engine.DetectDuplicateCandidates([]CandidateProfile{a, b}, 0)
	require.Len(t, groups, 1)
}
