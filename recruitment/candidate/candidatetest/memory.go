// Package candidatetest provides an in-memory candidate repository for tests.
package candidatetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
)

type MemoryRepository struct {
	mu         sync.Mutex
	candidates map[kernel.CandidateID]candidate.Candidate
	order      []kernel.CandidateID
	tags       map[kernel.TagID]tag.Tag
	links      map[kernel.CandidateID]map[kernel.TagID]bool
}

var _ candidate.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(candidates ...candidate.Candidate) *MemoryRepository {
	r := &MemoryRepository{
		candidates: map[kernel.CandidateID]candidate.Candidate{},
		tags:       map[kernel.TagID]tag.Tag{},
		links:      map[kernel.CandidateID]map[kernel.TagID]bool{},
	}
	for _, c := range candidates {
		r.candidates[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	return r
}

// RegisterTag makes a tag known to AddTag
func (r *MemoryRepository) RegisterTag(t tag.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[t.ID] = t
}

func (r *MemoryRepository) Create(_ context.Context, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(c.Email, c.TenantID, c.ID) {
		return candidate.ErrEmailAlreadyExists()
	}
	r.candidates[c.ID] = *c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.candidates[c.ID]
	if !ok || existing.TenantID != c.TenantID {
		return candidate.ErrCandidateNotFound()
	}
	if r.emailTaken(c.Email, c.TenantID, c.ID) {
		return candidate.ErrEmailAlreadyExists()
	}
	r.candidates[c.ID] = *c
	return nil
}

func (r *MemoryRepository) SaveEnrichment(_ context.Context, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.candidates[c.ID]
	if !ok || existing.TenantID != c.TenantID {
		return candidate.ErrCandidateNotFound()
	}
	if strings.TrimSpace(existing.Skills) == "" {
		existing.Skills = c.Skills
	}
	if existing.ExperienceYears == nil || *existing.ExperienceYears == 0 {
		existing.ExperienceYears = c.ExperienceYears
	}
	existing.UpdatedAt = c.UpdatedAt
	r.candidates[c.ID] = existing
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id kernel.CandidateID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok || c.TenantID != tenantID {
		return nil, candidate.ErrCandidateNotFound()
	}
	c.Tags = r.tagsOf(id)
	return &c, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email kernel.Email, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		c := r.candidates[id]
		if c.TenantID == tenantID && !c.Email.IsEmpty() && c.Email.Normalized() == email.Normalized() {
			return &c, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound()
}

func (r *MemoryRepository) Delete(_ context.Context, id kernel.CandidateID, tenantID kernel.TenantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok || c.TenantID != tenantID {
		return candidate.ErrCandidateNotFound()
	}
	delete(r.candidates, id)
	delete(r.links, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) Search(_ context.Context, tenantID kernel.TenantID, req candidate.SearchCandidatesRequest) (*kernel.Paginated[candidate.Candidate], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(req.Query)

	var matched []candidate.Candidate
	for i := len(r.order) - 1; i >= 0; i-- {
		c := r.candidates[r.order[i]]
		if c.TenantID != tenantID {
			continue
		}
		if req.Status != "" && c.Status != req.Status {
			continue
		}
		if req.TagID != "" && !r.links[c.ID][req.TagID] {
			continue
		}
		if q != "" && !containsAny(q, c.FirstName.String(), c.LastName.String(), c.Email.String(), c.CurrentPosition, c.CurrentCompany) {
			continue
		}
		c.Tags = r.tagsOf(c.ID)
		matched = append(matched, c)
	}

	opts := req.Pagination.Normalize()
	start := min(opts.Offset(), len(matched))
	end := min(start+opts.PageSize, len(matched))
	return kernel.NewPaginated(matched[start:end], opts, len(matched)), nil
}

func (r *MemoryRepository) ListAll(_ context.Context, tenantID kernel.TenantID) ([]candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []candidate.Candidate{}
	for _, id := range r.order {
		c := r.candidates[id]
		if c.TenantID == tenantID {
			c.Tags = r.tagsOf(id)
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Count(ctx context.Context, tenantID kernel.TenantID) (int, error) {
	all, _ := r.ListAll(ctx, tenantID)
	return len(all), nil
}

func (r *MemoryRepository) AddTag(_ context.Context, id kernel.CandidateID, tagID kernel.TagID, tenantID kernel.TenantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	t, tagOK := r.tags[tagID]
	if !ok || c.TenantID != tenantID || !tagOK || t.TenantID != tenantID {
		return candidate.ErrCandidateNotFound()
	}
	if r.links[id] == nil {
		r.links[id] = map[kernel.TagID]bool{}
	}
	if r.links[id][tagID] {
		return candidate.ErrTagAlreadyAssigned()
	}
	r.links[id][tagID] = true
	return nil
}

func (r *MemoryRepository) RemoveTag(_ context.Context, id kernel.CandidateID, tagID kernel.TagID, tenantID kernel.TenantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.candidates[id]; !ok || c.TenantID != tenantID || !r.links[id][tagID] {
		return candidate.ErrTagNotAssigned()
	}
	delete(r.links[id], tagID)
	return nil
}

func (r *MemoryRepository) emailTaken(email kernel.Email, tenantID kernel.TenantID, self kernel.CandidateID) bool {
	if email.IsEmpty() {
		return false
	}
	for _, c := range r.candidates {
		if c.ID != self && c.TenantID == tenantID && c.Email.Normalized() == email.Normalized() {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) tagsOf(id kernel.CandidateID) []tag.Tag {
	out := []tag.Tag{}
	for tagID := range r.links[id] {
		out = append(out, r.tags[tagID])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
