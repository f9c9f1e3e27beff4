// Package tagtest provides an in-memory tag repository for tests.
package tagtest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
)

type MemoryRepository struct {
	mu   sync.Mutex
	tags map[kernel.TagID]tag.Tag
}

var _ tag.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(tags ...tag.Tag) *MemoryRepository {
	r := &MemoryRepository{tags: map[kernel.TagID]tag.Tag{}}
	for _, t := range tags {
		r.tags[t.ID] = t
	}
	return r
}

func (r *MemoryRepository) Create(_ context.Context, t *tag.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tags {
		if existing.TenantID == t.TenantID && existing.Name == t.Name {
			return tag.ErrTagAlreadyExists()
		}
	}
	r.tags[t.ID] = *t
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id kernel.TagID, tenantID kernel.TenantID) (*tag.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tags[id]
	if !ok || t.TenantID != tenantID {
		return nil, tag.ErrTagNotFound()
	}
	return &t, nil
}

func (r *MemoryRepository) GetByName(_ context.Context, name string, tenantID kernel.TenantID) (*tag.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tags {
		if t.TenantID == tenantID && t.Name == name {
			return &t, nil
		}
	}
	return nil, tag.ErrTagNotFound()
}

func (r *MemoryRepository) List(_ context.Context, tenantID kernel.TenantID) ([]tag.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []tag.Tag{}
	for _, t := range r.tags {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, t *tag.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.tags[t.ID]; !ok || existing.TenantID != t.TenantID {
		return tag.ErrTagNotFound()
	}
	r.tags[t.ID] = *t
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id kernel.TagID, tenantID kernel.TenantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tags[id]; !ok || t.TenantID != tenantID {
		return tag.ErrTagNotFound()
	}
	delete(r.tags, id)
	return nil
}
