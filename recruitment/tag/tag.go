package tag

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
)

const DefaultColor = "#007bff"

// Tag is a tenant-wide label that can be attached to candidates
type Tag struct {
	ID             kernel.TagID    `db:"id" json:"id"`
	TenantID       kernel.TenantID `db:"tenant_id" json:"tenant_id"`
	Name           string          `db:"name" json:"name"`
	Color          string          `db:"color" json:"color"`
	Description    string          `db:"description" json:"description,omitempty"`
	CandidateCount int             `db:"candidate_count" json:"candidate_count"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Rename trims the name and rejects blanks
func (t *Tag) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName()
	}
	t.Name = name
	return nil
}

// Recolor sets the color, falling back to DefaultColor when empty
func (t *Tag) Recolor(color string) error {
	color = strings.TrimSpace(color)
	if color == "" {
		t.Color = DefaultColor
		return nil
	}
	if !kernel.IsHexColor(color) {
		return ErrInvalidColor().WithDetail("color", color)
	}
	t.Color = color
	return nil
}
