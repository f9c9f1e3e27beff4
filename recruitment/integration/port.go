package integration

import (
	"context"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
)

// CandidateCreator stores a new candidate the same way a user-created one is
type CandidateCreator interface {
	CreateCandidate(ctx context.Context, req candidate.CreateCandidateRequest, creatorID kernel.UserID, tenantID kernel.TenantID) (*candidate.Candidate, error)
}
