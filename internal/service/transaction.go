package service

import (
	"context"
	"time"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
)

func (s *DefaultService) ListTransactions(ctx context.Context, actor models.Actor, filter models.TransactionFilter) ([]models.Transaction, error) {
	transactions, err := s.repo.ListTransactions(ctx, actor.ID, filter)
	if err != nil {
		return nil, apperr.Internal("Error fetching transactions", err)
	}
	return transactions, nil
}

func (s *DefaultService) CreateTransaction(ctx context.Context, actor models.Actor, req models.CreateTransactionRequest, meta models.RequestMeta) (*models.Transaction, error) {
	description, err := validate.Required(req.Description, "Transaction description is required")
	if err != nil {
		return nil, err
	}

	amount, err := validate.Money(req.Amount, "Amount must be a positive number")
	if err != nil {
		return nil, err
	}

	if err := validate.OneOf(req.Type, "Transaction type must be INCOME, EXPENSE, or TRANSFER",
		"INCOME", "EXPENSE", "TRANSFER"); err != nil {
		return nil, err
	}

	if req.AccountID == nil || *req.AccountID <= 0 {
		return nil, apperr.Validation("Account ID is required")
	}

	dueDate, err := validate.Date(req.DueDate, "Due date is required")
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetAccountOwned(ctx, *req.AccountID, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error creating transaction", err)
	}
	if account == nil {
		return nil, apperr.Validation("Account not found")
	}

	if req.CategoryID != nil {
		category, err := s.repo.GetCategoryOwned(ctx, *req.CategoryID, actor.ID)
		if err != nil {
			return nil, apperr.Internal("Error creating transaction", err)
		}
		if category == nil {
			return nil, apperr.Validation("Category not found")
		}
	}

	var paidDate *time.Time
	if req.PaidDate != "" {
		parsed, err := validate.Date(req.PaidDate, "Invalid paid date")
		if err != nil {
			return nil, err
		}
		paidDate = &parsed
	}

	status := req.Status
	if status == "" {
		status = "PAID"
	}
	if err := validate.OneOf(status, "Status must be PENDING or PAID",
		"PENDING", "PAID"); err != nil {
		return nil, err
	}

	var observation *string
	if req.Observation != "" {
		observation = &req.Observation
	}

	txn := &models.Transaction{
		UserID:      actor.ID,
		AccountID:   *req.AccountID,
		CategoryID:  req.CategoryID,
		Description: description,
		Amount:      amount,
		Type:        req.Type,
		Status:      status,
		DueDate:     dueDate,
		PaidDate:    paidDate,
		Observation: observation,
	}
	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, apperr.Internal("Error creating transaction", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionCreate, "TRANSACTION", txn.ID, map[string]interface{}{
		"description": txn.Description,
		"amount":      txn.Amount,
		"type":        txn.Type,
		"account_id":  txn.AccountID,
		"category_id": txn.CategoryID,
		"due_date":    req.DueDate,
		"paid_date":   req.PaidDate,
		"status":      txn.Status,
		"observation": txn.Observation,
		"user_id":     actor.ID,
	})

	return txn, nil
}

func (s *DefaultService) UpdateTransaction(ctx context.Context, actor models.Actor, id int64, req models.UpdateTransactionRequest, meta models.RequestMeta) (*models.Transaction, error) {
	existing, err := s.repo.GetTransactionOwned(ctx, id, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error updating transaction", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("Transaction not found")
	}

	changes := map[string]interface{}{}

	if req.Description.Set {
		description, err := validate.Required(req.Description.Value, "Transaction description is required")
		if err != nil {
			return nil, err
		}
		changes["description"] = description
		existing.Description = description
	}

	if req.Amount.Set {
		amount, err := validate.Money(req.Amount.Value, "Amount must be a positive number")
		if err != nil {
			return nil, err
		}
		changes["amount"] = amount
		existing.Amount = amount
	}

	if req.Type.Set {
		if err := validate.OneOf(req.Type.Value, "Transaction type must be INCOME, EXPENSE, or TRANSFER",
			"INCOME", "EXPENSE", "TRANSFER"); err != nil {
			return nil, err
		}
		changes["type"] = req.Type.Value
		existing.Type = req.Type.Value
	}

	if req.AccountID.Set {
		if !req.AccountID.Valid || req.AccountID.Value <= 0 {
			return nil, apperr.Validation("Account ID is required")
		}
		account, err := s.repo.GetAccountOwned(ctx, req.AccountID.Value, actor.ID)
		if err != nil {
			return nil, apperr.Internal("Error updating transaction", err)
		}
		if account == nil {
			return nil, apperr.Validation("Account not found")
		}
		changes["account_id"] = req.AccountID.Value
		existing.AccountID = req.AccountID.Value
	}

	if req.CategoryID.Set {
		var categoryID *int64
		if req.CategoryID.Valid && req.CategoryID.Value > 0 {
			category, err := s.repo.GetCategoryOwned(ctx, req.CategoryID.Value, actor.ID)
			if err != nil {
				return nil, apperr.Internal("Error updating transaction", err)
			}
			if category == nil {
				return nil, apperr.Validation("Category not found")
			}
			v := req.CategoryID.Value
			categoryID = &v
		}
		changes["category_id"] = categoryID
		existing.CategoryID = categoryID
	}

	if req.DueDate.Set {
		dueDate, err := validate.Date(req.DueDate.Value, "Due date is required")
		if err != nil {
			return nil, err
		}
		changes["due_date"] = dueDate
		existing.DueDate = dueDate
	}

	if req.PaidDate.Set {
		var paidDate *time.Time
		if req.PaidDate.Valid && req.PaidDate.Value != "" {
			parsed, err := validate.Date(req.PaidDate.Value, "Invalid paid date")
			if err != nil {
				return nil, err
			}
			paidDate = &parsed
		}
		changes["paid_date"] = paidDate
		existing.PaidDate = paidDate
	}

	if req.Status.Set {
		if err := validate.OneOf(req.Status.Value, "Status must be PENDING or PAID",
			"PENDING", "PAID"); err != nil {
			return nil, err
		}
		changes["status"] = req.Status.Value
		existing.Status = req.Status.Value
	}

	if req.Observation.Set {
		var observation *string
		if req.Observation.Valid && req.Observation.Value != "" {
			v := req.Observation.Value
			observation = &v
		}
		changes["observation"] = observation
		existing.Observation = observation
	}

	if err := s.repo.UpdateTransaction(ctx, id, changes); err != nil {
		return nil, apperr.Internal("Error updating transaction", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionUpdate, "TRANSACTION", id, changes)

	return existing, nil
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error {
	existing, err := s.repo.GetTransactionOwned(ctx, id, actor.ID)
	if err != nil {
		return apperr.Internal("Error deleting transaction", err)
	}
	if existing == nil {
		return apperr.NotFound("Transaction not found")
	}

	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return apperr.Internal("Error deleting transaction", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionDelete, "TRANSACTION", id, nil)

	return nil
}
