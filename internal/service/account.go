package service

import (
	"context"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
)

func (s *DefaultService) ListAccounts(ctx context.Context, actor models.Actor) ([]models.Account, error) {
	accounts, err := s.repo.ListAccounts(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error fetching accounts", err)
	}
	return accounts, nil
}

func (s *DefaultService) CreateAccount(ctx context.Context, actor models.Actor, req models.CreateAccountRequest, meta models.RequestMeta) (*models.Account, error) {
	name, err := validate.Required(req.Name, "Account name is required")
	if err != nil {
		return nil, err
	}

	accountType := req.Type
	if accountType == "" {
		accountType = "CHECKING"
	}
	if err := validate.OneOf(accountType, "Invalid account type",
		"WALLET", "CHECKING", "SAVINGS", "INVESTMENT"); err != nil {
		return nil, err
	}

	balance := "0.00"
	if req.InitialBalance != "" {
		balance, err = validate.MoneyAny(req.InitialBalance, "Initial balance must be a valid number")
		if err != nil {
			return nil, err
		}
	}

	if err := validate.HexColor(req.Color); err != nil {
		return nil, err
	}
	var color *string
	if req.Color != "" {
		color = &req.Color
	}

	account := &models.Account{
		UserID:         actor.ID,
		Name:           name,
		Type:           accountType,
		InitialBalance: balance,
		Color:          color,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, apperr.Internal("Error creating account", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionCreate, "ACCOUNT", account.ID, map[string]interface{}{
		"name":            account.Name,
		"type":            account.Type,
		"initial_balance": account.InitialBalance,
		"color":           account.Color,
		"user_id":         actor.ID,
	})

	return account, nil
}

func (s *DefaultService) UpdateAccount(ctx context.Context, actor models.Actor, id int64, req models.UpdateAccountRequest, meta models.RequestMeta) (*models.Account, error) {
	existing, err := s.repo.GetAccountOwned(ctx, id, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error updating account", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("Account not found")
	}

	changes := map[string]interface{}{}

	if req.Name.Set {
		name, err := validate.Required(req.Name.Value, "Account name is required")
		if err != nil {
			return nil, err
		}
		changes["name"] = name
		existing.Name = name
	}

	if req.Type.Set {
		if err := validate.OneOf(req.Type.Value, "Invalid account type",
			"WALLET", "CHECKING", "SAVINGS", "INVESTMENT"); err != nil {
			return nil, err
		}
		changes["type"] = req.Type.Value
		existing.Type = req.Type.Value
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

	if err := s.repo.UpdateAccount(ctx, id, changes); err != nil {
		return nil, apperr.Internal("Error updating account", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionUpdate, "ACCOUNT", id, changes)

	return existing, nil
}

func (s *DefaultService) DeleteAccount(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error {
	existing, err := s.repo.GetAccountOwned(ctx, id, actor.ID)
	if err != nil {
		return apperr.Internal("Error deleting account", err)
	}
	if existing == nil {
		return apperr.NotFound("Account not found")
	}

	if err := s.repo.DeleteAccount(ctx, id); err != nil {
		return apperr.Internal("Error deleting account", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionDelete, "ACCOUNT", id, nil)

	return nil
}
