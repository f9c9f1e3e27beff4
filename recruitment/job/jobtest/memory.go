// Package jobtest provides an in-memory job repository for tests.
package jobtest

import (
	"context"
	"strings"
	"sync"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/job"
)

type MemoryRepository struct {
	mu    sync.Mutex
	jobs  map[kernel.JobID]job.Job
	order []kernel.JobID
}

var _ job.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(jobs ...job.Job) *MemoryRepository {
	r := &MemoryRepository{jobs: map[kernel.JobID]job.Job{}}
	for _, j := range jobs {
		r.jobs[j.ID] = j
		r.order = append(r.order, j.ID)
	}
	return r
}

func (r *MemoryRepository) Create(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = *j
	r.order = append(r.order, j.ID)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[j.ID]
	if !ok || existing.TenantID != j.TenantID {
		return job.ErrJobNotFound()
	}
	r.jobs[j.ID] = *j
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id kernel.JobID, tenantID kernel.TenantID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.TenantID != tenantID {
		return nil, job.ErrJobNotFound()
	}
	return &j, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id kernel.JobID, tenantID kernel.TenantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.TenantID != tenantID {
		return job.ErrJobNotFound()
	}
	delete(r.jobs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) List(_ context.Context, tenantID kernel.TenantID, req job.ListJobsRequest) (*kernel.Paginated[job.Job], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(req.Query)

	var matched []job.Job
	for i := len(r.order) - 1; i >= 0; i-- {
		j := r.jobs[r.order[i]]
		switch {
		case j.TenantID != tenantID:
			continue
		case req.Status != "" && j.Status != req.Status:
			continue
		case req.Department != "" && !strings.EqualFold(j.Department, req.Department):
			continue
		case req.ExperienceLevel != "" && j.ExperienceLevel != req.ExperienceLevel:
			continue
		case req.RemoteWork != nil && j.RemoteWork != *req.RemoteWork:
			continue
		case q != "" && !strings.Contains(strings.ToLower(j.Title+" "+j.Description+" "+j.Department), q):
			continue
		}
		matched = append(matched, j)
	}

	opts := req.Pagination.Normalize()
	start := min(opts.Offset(), len(matched))
	end := min(start+opts.PageSize, len(matched))
	return kernel.NewPaginated(matched[start:end], opts, len(matched)), nil
}

func (r *MemoryRepository) Count(_ context.Context, tenantID kernel.TenantID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, j := range r.jobs {
		if j.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}
