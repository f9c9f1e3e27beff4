// Package matchingtest provides an in-memory match repository for tests.
package matchingtest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/matching"
)

type pair struct {
	candidate kernel.CandidateID
	job       kernel.JobID
}

type MemoryRepository struct {
	mu      sync.Mutex
	matches map[kernel.MatchID]matching.Match
	byPair  map[pair]kernel.MatchID
	order   []kernel.MatchID
}

var _ matching.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		matches: map[kernel.MatchID]matching.Match{},
		byPair:  map[pair]kernel.MatchID{},
	}
}

func (r *MemoryRepository) Upsert(_ context.Context, m *matching.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pair{m.CandidateID, m.JobID}
	if id, ok := r.byPair[key]; ok {
		existing := r.matches[id]
		existing.CompatibilityScore = m.CompatibilityScore
		existing.ScoreBreakdown = m.ScoreBreakdown
		existing.UpdatedAt = m.UpdatedAt
		r.matches[id] = existing
		*m = existing
		return nil
	}
	r.matches[m.ID] = *m
	r.byPair[key] = m.ID
	r.order = append(r.order, m.ID)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, m *matching.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.matches[m.ID]
	if !ok || existing.TenantID != m.TenantID {
		return matching.ErrMatchNotFound()
	}
	r.matches[m.ID] = *m
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id kernel.MatchID, tenantID kernel.TenantID) (*matching.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok || m.TenantID != tenantID {
		return nil, matching.ErrMatchNotFound()
	}
	return &m, nil
}

func (r *MemoryRepository) List(_ context.Context, tenantID kernel.TenantID, req matching.ListMatchesRequest) (*kernel.Paginated[matching.Match], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	opts := req.Pagination.Normalize()

	items := make([]matching.Match, 0)
	for _, id := range r.order {
		m := r.matches[id]
		if m.TenantID != tenantID {
			continue
		}
		if req.JobID != "" && m.JobID != req.JobID {
			continue
		}
		if req.CandidateID != "" && m.CandidateID != req.CandidateID {
			continue
		}
		if req.Status != "" && m.Status != req.Status {
			continue
		}
		items = append(items, m)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CompatibilityScore > items[j].CompatibilityScore
	})

	total := len(items)
	start := min(opts.Offset(), total)
	end := min(start+opts.PageSize, total)
	return kernel.NewPaginated(items[start:end], opts, total), nil
}

func (r *MemoryRepository) Count(_ context.Context, tenantID kernel.TenantID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.matches {
		if m.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) Scores(_ context.Context, tenantID kernel.TenantID) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scores := make([]float64, 0)
	for _, id := range r.order {
		if m := r.matches[id]; m.TenantID == tenantID {
			scores = append(scores, m.CompatibilityScore)
		}
	}
	return scores, nil
}
