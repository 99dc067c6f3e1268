package service

import (
	"context"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
)

func (s *DefaultService) ListCategories(ctx context.Context, actor models.Actor) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error fetching categories", err)
	}
	return categories, nil
}

func (s *DefaultService) CreateCategory(ctx context.Context, actor models.Actor, req models.CreateCategoryRequest, meta models.RequestMeta) (*models.Category, error) {
	name, err := validate.Required(req.Name, "Category name is required")
	if err != nil {
		return nil, err
	}

	if err := validate.OneOf(req.Type, "Category type must be INCOME or EXPENSE",
		"INCOME", "EXPENSE"); err != nil {
		return nil, err
	}

	// A parent must exist, belong to the same actor, and share the type.
	if req.ParentID != nil {
		parent, err := s.repo.GetCategoryOwned(ctx, *req.ParentID, actor.ID)
		if err != nil {
			return nil, apperr.Internal("Error creating category", err)
		}
		if parent == nil {
			return nil, apperr.Validation("Parent category not found")
		}
		if parent.Type != req.Type {
			return nil, apperr.Validation("Parent category must have the same type")
		}
	}

	var icon *string
	if req.Icon != "" {
		icon = &req.Icon
	}

	category := &models.Category{
		UserID:   actor.ID,
		ParentID: req.ParentID,
		Name:     name,
		Type:     req.Type,
		Icon:     icon,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, apperr.Internal("Error creating category", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionCreate, "CATEGORY", category.ID, map[string]interface{}{
		"name":      category.Name,
		"type":      category.Type,
		"icon":      category.Icon,
		"parent_id": category.ParentID,
		"user_id":   actor.ID,
	})

	return category, nil
}

func (s *DefaultService) UpdateCategory(ctx context.Context, actor models.Actor, id int64, req models.UpdateCategoryRequest, meta models.RequestMeta) (*models.Category, error) {
	existing, err := s.repo.GetCategoryOwned(ctx, id, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error updating category", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("Category not found")
	}

	changes := map[string]interface{}{}

	if req.Name.Set {
		name, err := validate.Required(req.Name.Value, "Category name is required")
		if err != nil {
			return nil, err
		}
		changes["name"] = name
		existing.Name = name
	}

	if req.Type.Set {
		if err := validate.OneOf(req.Type.Value, "Category type must be INCOME or EXPENSE",
			"INCOME", "EXPENSE"); err != nil {
			return nil, err
		}
		// The type is frozen while children exist; they inherited it.
		if req.Type.Value != existing.Type {
			hasChildren, err := s.repo.CategoryHasChildren(ctx, id)
			if err != nil {
				return nil, apperr.Internal("Error updating category", err)
			}
			if hasChildren {
				return nil, apperr.Validation("Cannot change category type when it has child categories")
			}
		}
		changes["type"] = req.Type.Value
		existing.Type = req.Type.Value
	}

	if req.Icon.Set {
		var icon *string
		if req.Icon.Valid && req.Icon.Value != "" {
			v := req.Icon.Value
			icon = &v
		}
		changes["icon"] = icon
		existing.Icon = icon
	}

	if err := s.repo.UpdateCategory(ctx, id, changes); err != nil {
		return nil, apperr.Internal("Error updating category", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionUpdate, "CATEGORY", id, changes)

	return existing, nil
}

func (s *DefaultService) DeleteCategory(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error {
	existing, err := s.repo.GetCategoryOwned(ctx, id, actor.ID)
	if err != nil {
		return apperr.Internal("Error deleting category", err)
	}
	if existing == nil {
		return apperr.NotFound("Category not found")
	}

	hasChildren, err := s.repo.CategoryHasChildren(ctx, id)
	if err != nil {
		return apperr.Internal("Error deleting category", err)
	}
	if hasChildren {
		return apperr.Validation("Cannot delete category with child categories")
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return apperr.Internal("Error deleting category", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionDelete, "CATEGORY", id, nil)

	return nil
}
