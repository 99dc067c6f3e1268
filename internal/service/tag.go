package service

import (
	"context"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
)

func (s *DefaultService) ListTags(ctx context.Context, actor models.Actor) ([]models.Tag, error) {
	tags, err := s.repo.ListTags(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error fetching tags", err)
	}
	return tags, nil
}

func (s *DefaultService) CreateTag(ctx context.Context, actor models.Actor, req models.CreateTagRequest, meta models.RequestMeta) (*models.Tag, error) {
	name, err := validate.Required(req.Name, "Tag name is required")
	if err != nil {
		return nil, err
	}

	if err := validate.HexColor(req.Color); err != nil {
		return nil, err
	}
	var color *string
	if req.Color != "" {
		color = &req.Color
	}

	// Application-level duplicate check; the per-user unique index on name
	// is the authoritative backstop under concurrent creates.
	taken, err := s.repo.TagNameTaken(ctx, actor.ID, name, 0)
	if err != nil {
		return nil, apperr.Internal("Error creating tag", err)
	}
	if taken {
		return nil, apperr.Validation("Tag with this name already exists")
	}

	tag := &models.Tag{
		UserID: actor.ID,
		Name:   name,
		Color:  color,
	}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, apperr.Internal("Error creating tag", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionCreate, "TAG", tag.ID, map[string]interface{}{
		"name":    tag.Name,
		"color":   tag.Color,
		"user_id": actor.ID,
	})

	return tag, nil
}

func (s *DefaultService) UpdateTag(ctx context.Context, actor models.Actor, id int64, req models.UpdateTagRequest, meta models.RequestMeta) (*models.Tag, error) {
	existing, err := s.repo.GetTagOwned(ctx, id, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error updating tag", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("Tag not found")
	}

	changes := map[string]interface{}{}

	if req.Name.Set {
		name, err := validate.Required(req.Name.Value, "Tag name is required")
		if err != nil {
			return nil, err
		}
		taken, err := s.repo.TagNameTaken(ctx, actor.ID, name, id)
		if err != nil {
			return nil, apperr.Internal("Error updating tag", err)
		}
		if taken {
			return nil, apperr.Validation("Tag with this name already exists")
		}
		changes["name"] = name
		existing.Name = name
	}

	if req.Color.Set {
		var color *string
		if req.Color.Valid && req.Color.Value != "" {
			if err := validate.HexColor(req.Color.Value); err != nil {
				return nil, err
			}
			v := req.Color.Value
			color = &v
		}
		changes["color"] = color
		existing.Color = color
	}

	if err := s.repo.UpdateTag(ctx, id, changes); err != nil {
		return nil, apperr.Internal("Error updating tag", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionUpdate, "TAG", id, changes)

	return existing, nil
}

func (s *DefaultService) DeleteTag(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error {
	existing, err := s.repo.GetTagOwned(ctx, id, actor.ID)
	if err != nil {
		return apperr.Internal("Error deleting tag", err)
	}
	if existing == nil {
		return apperr.NotFound("Tag not found")
	}

	if err := s.repo.DeleteTag(ctx, id); err != nil {
		return apperr.Internal("Error deleting tag", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionDelete, "TAG", id, nil)

	return nil
}
