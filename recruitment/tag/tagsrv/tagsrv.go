package tagsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/errx"
	"github.com/Abraxas-365/hiresight/pkg/iam/auth"
	"github.com/Abraxas-365/hiresight/pkg/iam/user"
	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/tag"
	"github.com/google/uuid"
)

type TagService struct {
	tagRepo  tag.Repository
	userRepo user.UserRepository
}

func NewTagService(tagRepo tag.Repository, userRepo user.UserRepository) *TagService {
	return &TagService{tagRepo: tagRepo, userRepo: userRepo}
}

func (s *TagService) ListTags(ctx context.Context, tenantID kernel.TenantID) ([]tag.Tag, error) {
	tags, err := s.tagRepo.List(ctx, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list tags", errx.TypeInternal)
	}
	return tags, nil
}

func (s *TagService) GetTag(ctx context.Context, id kernel.TagID, tenantID kernel.TenantID) (*tag.Tag, error) {
	return s.tagRepo.GetByID(ctx, id, tenantID)
}

// CreateTag adds a tag; names are unique within the tenant
func (s *TagService) CreateTag(ctx context.Context, req tag.CreateTagRequest, actorID kernel.UserID, tenantID kernel.TenantID) (*tag.Tag, error) {
	if err := s.authorize(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	t := &tag.Tag{
		ID:          kernel.NewTagID(uuid.NewString()),
		TenantID:    tenantID,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now(),
	}
	if err := t.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := t.Recolor(req.Color); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, t.Name, "", tenantID); err != nil {
		return nil, err
	}

	if err := s.tagRepo.Create(ctx, t); err != nil {
		return nil, errx.Wrap(err, "failed to create tag", errx.TypeInternal)
	}
	return t, nil
}

func (s *TagService) UpdateTag(ctx context.Context, id kernel.TagID, req tag.UpdateTagRequest, actorID kernel.UserID, tenantID kernel.TenantID) (*tag.Tag, error) {
	if err := s.authorize(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	t, err := s.tagRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != t.Name {
		if err := t.Rename(*req.Name); err != nil {
			return nil, err
		}
		if err := s.ensureNameFree(ctx, t.Name, t.ID, tenantID); err != nil {
			return nil, err
		}
	}
	if req.Color != nil {
		if err := t.Recolor(*req.Color); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.tagRepo.Update(ctx, t); err != nil {
		return nil, errx.Wrap(err, "failed to update tag", errx.TypeInternal)
	}
	return t, nil
}

// DeleteTag removes the tag and detaches it from every candidate
func (s *TagService) DeleteTag(ctx context.Context, id kernel.TagID, actorID kernel.UserID, tenantID kernel.TenantID) error {
	if err := s.authorize(ctx, actorID, tenantID); err != nil {
		return err
	}
	return s.tagRepo.Delete(ctx, id, tenantID)
}

func (s *TagService) ensureNameFree(ctx context.Context, name string, self kernel.TagID, tenantID kernel.TenantID) error {
	existing, err := s.tagRepo.GetByName(ctx, name, tenantID)
	switch {
	case err == nil && existing.ID != self:
		return tag.ErrTagAlreadyExists().WithDetail("name", name)
	case err != nil && !errx.IsCode(err, tag.CodeTagNotFound):
		return errx.Wrap(err, "failed to check tag name", errx.TypeInternal)
	}
	return nil
}

func (s *TagService) authorize(ctx context.Context, actorID kernel.UserID, tenantID kernel.TenantID) error {
	actor, err := s.userRepo.FindByID(ctx, actorID, tenantID)
	if err != nil {
		return user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return user.ErrUserSuspended()
	}
	if !actor.CanManage() || !actor.HasAnyScope(auth.ScopeTagsWrite, auth.ScopeTagsAll, auth.ScopeAll) {
		return tag.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeTagsWrite)
	}
	return nil
}
