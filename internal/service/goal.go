package service

import (
	"context"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
)

func (s *DefaultService) ListGoals(ctx context.Context, actor models.Actor, filter models.GoalFilter) ([]models.Goal, error) {
	goals, err := s.repo.ListGoals(ctx, actor.ID, filter)
	if err != nil {
		return nil, apperr.Internal("Error fetching goals", err)
	}
	return goals, nil
}

func (s *DefaultService) CreateGoal(ctx context.Context, actor models.Actor, req models.CreateGoalRequest, meta models.RequestMeta) (*models.Goal, error) {
	name, err := validate.Required(req.Name, "Goal name is required")
	if err != nil {
		return nil, err
	}

	target, err := validate.Money(req.TargetAmount, "Target amount must be a positive number")
	if err != nil {
		return nil, err
	}

	current := "0.00"
	if req.CurrentAmount != "" {
		current, err = validate.MoneyNonNegative(req.CurrentAmount, "Current amount must be a positive number")
		if err != nil {
			return nil, err
		}
	}

	deadline, err := validate.FutureDate(req.Deadline, "Deadline is required", "Deadline must be in the future")
	if err != nil {
		return nil, err
	}

	status := "IN_PROGRESS"
	if validate.AmountGTE(current, target) {
		status = "COMPLETED"
	}

	goal := &models.Goal{
		UserID:        actor.ID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		Status:        status,
	}
	if err := s.repo.CreateGoal(ctx, goal); err != nil {
		return nil, apperr.Internal("Error creating goal", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionCreate, "GOAL", goal.ID, map[string]interface{}{
		"name":           goal.Name,
		"target_amount":  goal.TargetAmount,
		"current_amount": goal.CurrentAmount,
		"deadline":       req.Deadline,
		"user_id":        actor.ID,
	})

	return goal, nil
}

func (s *DefaultService) UpdateGoal(ctx context.Context, actor models.Actor, id int64, req models.UpdateGoalRequest, meta models.RequestMeta) (*models.Goal, error) {
	existing, err := s.repo.GetGoalOwned(ctx, id, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error updating goal", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("Goal not found")
	}

	changes := map[string]interface{}{}

	if req.Name.Set {
		name, err := validate.Required(req.Name.Value, "Goal name is required")
		if err != nil {
			return nil, err
		}
		changes["name"] = name
		existing.Name = name
	}

	if req.TargetAmount.Set {
		target, err := validate.Money(req.TargetAmount.Value, "Target amount must be a positive number")
		if err != nil {
			return nil, err
		}
		changes["target_amount"] = target
		existing.TargetAmount = target
	}

	if req.CurrentAmount.Set {
		// An explicit null (or empty string) resets the progress to zero.
		current := "0.00"
		if req.CurrentAmount.Valid && req.CurrentAmount.Value != "" {
			current, err = validate.MoneyNonNegative(req.CurrentAmount.Value, "Current amount must be a positive number")
			if err != nil {
				return nil, err
			}
		}
		changes["current_amount"] = current
		existing.CurrentAmount = current
	}

	if req.Deadline.Set {
		deadline, err := validate.FutureDate(req.Deadline.Value, "Deadline is required", "Deadline must be in the future")
		if err != nil {
			return nil, err
		}
		changes["deadline"] = deadline
		existing.Deadline = deadline
	}

	if req.Status.Set {
		if err := validate.OneOf(req.Status.Value, "Status must be IN_PROGRESS, COMPLETED, or FAILED",
			"IN_PROGRESS", "COMPLETED", "FAILED"); err != nil {
			return nil, err
		}
		changes["status"] = req.Status.Value
		existing.Status = req.Status.Value
	}

	// Completion is decided on the merged state: once the current amount
	// reaches the target, the goal is COMPLETED no matter what status the
	// request supplied.
	if validate.AmountGTE(existing.CurrentAmount, existing.TargetAmount) && existing.Status != "COMPLETED" {
		changes["status"] = "COMPLETED"
		existing.Status = "COMPLETED"
	}

	if err := s.repo.UpdateGoal(ctx, id, changes); err != nil {
		return nil, apperr.Internal("Error updating goal", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionUpdate, "GOAL", id, changes)

	return existing, nil
}

func (s *DefaultService) DeleteGoal(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error {
	existing, err := s.repo.GetGoalOwned(ctx, id, actor.ID)
	if err != nil {
		return apperr.Internal("Error deleting goal", err)
	}
	if existing == nil {
		return apperr.NotFound("Goal not found")
	}

	if err := s.repo.DeleteGoal(ctx, id); err != nil {
		return apperr.Internal("Error deleting goal", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionDelete, "GOAL", id, nil)

	return nil
}
