package note

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

type NoteType string

const (
	NoteTypeGeneral   NoteType = "general"
	NoteTypeInterview NoteType = "interview"
	NoteTypeFeedback  NoteType = "feedback"
	NoteTypeReference NoteType = "reference"
)

func (t NoteType) IsValid() bool {
	switch t {
	case NoteTypeGeneral, NoteTypeInterview, NoteTypeFeedback, NoteTypeReference:
		return true
	}
	return false
}

// Note is a recruiter's remark about a candidate. Private notes are only
// visible to their author.
type Note struct {
	ID          kernel.NoteID      `db:"id" json:"id"`
	TenantID    kernel.TenantID    `db:"tenant_id" json:"tenant_id"`
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	AuthorID    kernel.UserID      `db:"author_id" json:"author_id"`
	Content     string             `db:"content" json:"content"`
	Type        NoteType           `db:"note_type" json:"note_type"`
	IsPrivate   bool               `db:"is_private" json:"is_private"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}

func (n *Note) VisibleTo(userID kernel.UserID) bool {
	return !n.IsPrivate || n.AuthorID == userID
}

// EditableBy reports whether the user may change or delete the note
func (n *Note) EditableBy(userID kernel.UserID, isAdmin bool) bool {
	return isAdmin || n.AuthorID == userID
}

// SetContent rejects blank content
func (n *Note) SetContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent()
	}
	n.Content = content
	return nil
}
