package integration

import (
	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/candidate"
)

// IntegrateCandidateRequest carries one candidate from an external system.
// System names the sender and becomes the source when the payload has none.
type IntegrateCandidateRequest struct {
	RawData map[string]any `json:"raw_data" validate:"required"`
	System  string         `json:"system,omitempty" validate:"max=100"`
}

type IntegrationStatus string

const (
	StatusCreated   IntegrationStatus = "created"
	StatusDuplicate IntegrationStatus = "duplicate"
)

type IntegrationResult struct {
	Status       IntegrationStatus         `json:"status"`
	Candidate    *candidate.Candidate      `json:"candidate,omitempty"`
	DuplicateOf  kernel.CandidateID        `json:"duplicate_of,omitempty"`
	Unified      UnifiedCandidate          `json:"unified_data"`
	EnrichedData scoring.EnrichedCandidate `json:"enriched_data"`
}
