package scoring

import (
	"math"
	"strings"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// DuplicateGroup is a set of candidates judged to be the same person.
// Members keep input order; the first one anchored the group.
type DuplicateGroup struct {
	Candidates []CandidateProfile `json:"candidates"`
}

// IDs returns the member identifiers in group order
func (g DuplicateGroup) IDs() []string {
	ids := make([]string, 0, len(g.Candidates))
	for _, c := range g.Candidates {
		ids = append(ids, c.ID)
	}
	return ids
}

// Similarity is the weighted sum of exact-match indicators between two
// candidates. Email and name compare as given, so two records that both lack
// an email match on email; LinkedIn URL and phone count only when both sides
// carry one. The sum is rounded to four decimals so that weights adding up
// to the threshold compare equal.
func (e *Engine) Similarity(a, b CandidateProfile) float64 {
	var score float64

	if ea, eb := normEmail(a.Email), normEmail(b.Email); ea == eb {
		score += e.similarity.Email
	}
	if na, nb := fullName(a), fullName(b); na == nb {
		score += e.similarity.Name
	}
	if la, lb := normText(a.LinkedInURL), normText(b.LinkedInURL); la != "" && la == lb {
		score += e.similarity.LinkedIn
	}
	if pa, pb := kernel.Phone(a.Phone).Digits(), kernel.Phone(b.Phone).Digits(); pa != "" && pa == pb {
		score += e.similarity.Phone
	}

	return math.Round(score*1e4) / 1e4
}

// DetectDuplicateCandidates groups candidates greedily in input order. Each
// unprocessed candidate anchors a scan over the later unprocessed ones and
// absorbs those within threshold. Grouping is single-link from the anchor
// only, so it is not a transitive closure and depends on input order.
// threshold <= 0 uses the engine default.
func (e *Engine) DetectDuplicateCandidates(candidates []CandidateProfile, threshold float64) []DuplicateGroup {
	if threshold <= 0 {
		threshold = e.threshold
	}
	groups := make([]DuplicateGroup, 0)
	if len(candidates) < 2 {
		return groups
	}

	processed := make([]bool, len(candidates))
	for i := range candidates {
		if processed[i] {
			continue
		}
		members := []CandidateProfile{candidates[i]}
		for j := i + 1; j < len(candidates); j++ {
			if processed[j] {
				continue
			}
			if e.Similarity(candidates[i], candidates[j]) >= threshold {
				members = append(members, candidates[j])
				processed[j] = true
			}
		}
		if len(members) > 1 {
			groups = append(groups, DuplicateGroup{Candidates: members})
			processed[i] = true
		}
	}
	return groups
}

func normEmail(s string) string { return string(kernel.NewEmail(s)) }

func normText(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func fullName(c CandidateProfile) string {
	return strings.ToLower(strings.TrimSpace(c.FirstName + " " + c.LastName))
}
