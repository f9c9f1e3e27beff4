package matching

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

// ============================================================================
// Domain Types
// ============================================================================

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusReviewed MatchStatus = "reviewed"
	MatchStatusApproved MatchStatus = "approved"
	MatchStatusRejected MatchStatus = "rejected"
)

func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchStatusPending, MatchStatusReviewed, MatchStatusApproved, MatchStatusRejected:
		return true
	}
	return false
}

// Breakdown is a score breakdown stored as a JSONB column
type Breakdown scoring.ScoreBreakdown

func (b Breakdown) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *Breakdown) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*b = Breakdown{}
		return nil
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	}
	return fmt.Errorf("cannot scan %T into score breakdown", src)
}

// Match is the persisted compatibility of one candidate with one job.
// There is at most one match per (candidate, job) pair.
type Match struct {
	ID                 kernel.MatchID     `db:"id" json:"id"`
	TenantID           kernel.TenantID    `db:"tenant_id" json:"tenant_id"`
	CandidateID        kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	JobID              kernel.JobID       `db:"job_id" json:"job_id"`
	CompatibilityScore float64            `db:"compatibility_score" json:"compatibility_score"`
	ScoreBreakdown     Breakdown          `db:"score_breakdown" json:"score_breakdown"`
	Status             MatchStatus        `db:"status" json:"status"`
	ReviewedBy         *kernel.UserID     `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt         *time.Time         `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Rescore replaces the score, keeping the review state
func (m *Match) Rescore(b scoring.ScoreBreakdown) {
	m.CompatibilityScore = b.OverallScore
	m.ScoreBreakdown = Breakdown(b)
	m.UpdatedAt = time.Now()
}

// Review records a reviewer's verdict. A match cannot be sent back to pending.
func (m *Match) Review(status MatchStatus, reviewer kernel.UserID) error {
	if !status.IsValid() || status == MatchStatusPending {
		return ErrInvalidStatus().WithDetail("status", status)
	}
	now := time.Now()
	m.Status = status
	m.ReviewedBy = &reviewer
	m.ReviewedAt = &now
	m.UpdatedAt = now
	return nil
}

// ScoreBucket names the dashboard range a compatibility score falls in
func ScoreBucket(score float64) string {
	switch {
	case score >= 90:
		return "90-100"
	case score >= 80:
		return "80-89"
	case score >= 70:
		return "70-79"
	case score >= 60:
		return "60-69"
	case score >= 50:
		return "50-59"
	}
	return "0-49"
}

// ScoreBuckets lists the dashboard ranges from best to worst
var ScoreBuckets = []string{"90-100", "80-89", "70-79", "60-69", "50-59", "0-49"}
