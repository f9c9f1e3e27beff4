package note

type CreateNoteRequest struct {
	Content   string `json:"content" validate:"required"`
	Type      string `json:"note_type,omitempty" validate:"omitempty,oneof=general interview feedback reference"`
	IsPrivate bool   `json:"is_private"`
}

type UpdateNoteRequest struct {
	Content   *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Type      *string `json:"note_type,omitempty" validate:"omitempty,oneof=general interview feedback reference"`
	IsPrivate *bool   `json:"is_private,omitempty"`
}
