package integrationsrv

import (
	"context"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/audit"
	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/Abraxas-365/hiresight/pkg/validatex"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
	"github.com/Abraxas-365/hiresight/recruitment/integration"
)

// incomingID marks the pushed record among the stored ones during dedup
const incomingID = "incoming"

type IntegrationService struct {
	candidateRepo candidate.Repository
	creator       integration.CandidateCreator
	userRepo      user.UserRepository
	engine        *scoring.Engine
	audit         audit.Recorder
}

func NewIntegrationService(
	candidateRepo candidate.Repository,
	creator integration.CandidateCreator,
	userRepo user.UserRepository,
	engine *scoring.Engine,
	recorder audit.Recorder,
) *IntegrationService {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &IntegrationService{
		candidateRepo: candidateRepo,
		creator:       creator,
		userRepo:      userRepo,
		engine:        engine,
		audit:         recorder,
	}
}

// IntegrateCandidate unifies and enriches an external record, then either
// reports the stored candidate it duplicates or creates a new one
func (s *IntegrationService) IntegrateCandidate(ctx context.Context, req integration.IntegrateCandidateRequest, actorID kernel.UserID, tenantID kernel.TenantID) (*integration.IntegrationResult, error) {
	if err := s.authorize(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	unified, err := integration.Unify(req.RawData, req.System)
	if err != nil {
		return nil, err
	}
	incoming := unified.Profile()
	incoming.ID = incomingID
	enriched := s.engine.EnrichCandidateData(incoming)

	result := &integration.IntegrationResult{Unified: unified, EnrichedData: enriched}

	existing, err := s.candidateRepo.ListAll(ctx, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}
	if dup := s.duplicateOf(existing, enriched.CandidateProfile); dup != "" {
		logx.With("tenant_id", tenantID, "source", unified.Source, "duplicate_of", dup).
			Info("integrated candidate is a duplicate")
		result.Status = integration.StatusDuplicate
		result.DuplicateOf = dup
		return result, nil
	}

	createReq := unified.CreateRequest(enriched)
	if err := validatex.Struct(createReq); err != nil {
		return nil, err
	}
	created, err := s.creator.CreateCandidate(ctx, createReq, actorID, tenantID)
	if errx.IsCode(err, candidate.CodeEmailAlreadyExists) {
		if c, lookupErr := s.candidateRepo.GetByEmail(ctx, kernel.NewEmail(unified.Email), tenantID); lookupErr == nil {
			result.Status = integration.StatusDuplicate
			result.DuplicateOf = c.ID
			return result, nil
		}
	}
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		TenantID:     tenantID,
		UserID:       actorID,
		Action:       audit.ActionCandidateIntegrated,
		ResourceType: audit.ResourceCandidate,
		ResourceID:   created.ID.String(),
		Details:      audit.Details{"source": unified.Source, "source_id": unified.SourceID},
	})

	result.Status = integration.StatusCreated
	result.Candidate = created
	return result, nil
}

// duplicateOf runs the detector over the stored candidates followed by the
// incoming one and returns the first stored member of its group
func (s *IntegrationService) duplicateOf(existing []candidate.Candidate, incoming scoring.CandidateProfile) kernel.CandidateID {
	if len(existing) == 0 {
		return ""
	}
	profiles := append(candidate.Profiles(existing), incoming)
	for _, group := range s.engine.DetectDuplicateCandidates(profiles, 0) {
		ids := group.IDs()
		for _, id := range ids {
			if id != incomingID {
				continue
			}
			for _, other := range ids {
				if other != incomingID {
					return kernel.CandidateID(other)
				}
			}
		}
	}
	return ""
}

func (s *IntegrationService) authorize(ctx context.Context, userID kernel.UserID, tenantID kernel.TenantID) error {
	u, err := s.userRepo.FindByID(ctx, userID, tenantID)
	if err != nil {
		return user.ErrUserNotFound().WithDetail("user_id", userID.String())
	}
	if !u.IsActive() {
		return user.ErrUserSuspended().WithDetail("user_id", userID.String())
	}
	if !u.HasAnyScope(auth.ScopeIntegrationsWrite, auth.ScopeIntegrationsAll, auth.ScopeAll) {
		return integration.ErrInsufficientPermissions().
			WithDetail("required_scope", auth.ScopeIntegrationsWrite).
			WithDetail("role", u.Role)
	}
	return nil
}
