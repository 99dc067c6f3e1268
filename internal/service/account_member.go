package service

import (
	"context"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
)

// Membership rules: the account's creator always passes; otherwise a
// member row with role OWNER is required for member management. Existence
// checks run before any role check, so a caller can never distinguish
// "exists but forbidden" from "never existed" by which check fired.

// isAccountOwner reports whether the actor is the account creator or holds
// an OWNER membership on it.
func (s *DefaultService) isAccountOwner(ctx context.Context, account *models.Account, actor models.Actor) (bool, error) {
	if account.UserID == actor.ID {
		return true, nil
	}
	membership, err := s.repo.GetMembership(ctx, account.ID, actor.ID)
	if err != nil {
		return false, err
	}
	return membership != nil && membership.Role == "OWNER", nil
}

// ListAccountMembers returns the members of an account. Any member may
// read the list, not only owners.
func (s *DefaultService) ListAccountMembers(ctx context.Context, actor models.Actor, accountID int64) ([]models.AccountMemberWithUser, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal("Error fetching account members", err)
	}
	if account == nil {
		return nil, apperr.NotFound("Account not found")
	}

	if account.UserID != actor.ID {
		membership, err := s.repo.GetMembership(ctx, accountID, actor.ID)
		if err != nil {
			return nil, apperr.Internal("Error fetching account members", err)
		}
		if membership == nil {
			return nil, apperr.Forbidden("Access denied to this account")
		}
	}

	members, err := s.repo.ListAccountMembers(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal("Error fetching account members", err)
	}
	return members, nil
}

func (s *DefaultService) AddAccountMember(ctx context.Context, actor models.Actor, accountID int64, req models.AddAccountMemberRequest, meta models.RequestMeta) (*models.AccountMember, error) {
	if req.UserID == nil || *req.UserID <= 0 {
		return nil, apperr.Validation("User ID is required")
	}

	role := req.Role
	if role == "" {
		role = "EDITOR"
	}
	if err := validate.OneOf(role, "Role must be OWNER, EDITOR, or VIEWER",
		"OWNER", "EDITOR", "VIEWER"); err != nil {
		return nil, err
	}

	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal("Error adding account member", err)
	}
	if account == nil {
		return nil, apperr.NotFound("Account not found")
	}

	owner, err := s.isAccountOwner(ctx, account, actor)
	if err != nil {
		return nil, apperr.Internal("Error adding account member", err)
	}
	if !owner {
		return nil, apperr.Forbidden("Only account owners can add members")
	}

	targetUser, err := s.repo.GetUserByID(ctx, *req.UserID)
	if err != nil {
		return nil, apperr.Internal("Error adding account member", err)
	}
	if targetUser == nil {
		return nil, apperr.Validation("Target user not found")
	}

	// Fast-path duplicate check; the (account_id, user_id) unique
	// constraint remains the authoritative guard under races.
	existing, err := s.repo.GetMembership(ctx, accountID, *req.UserID)
	if err != nil {
		return nil, apperr.Internal("Error adding account member", err)
	}
	if existing != nil {
		return nil, apperr.Validation("User is already a member of this account")
	}

	member := &models.AccountMember{
		AccountID: accountID,
		UserID:    *req.UserID,
		Role:      role,
	}
	if err := s.repo.CreateAccountMember(ctx, member); err != nil {
		return nil, apperr.Internal("Error adding account member", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionCreate, "ACCOUNT_MEMBER", member.ID, map[string]interface{}{
		"account_id": accountID,
		"user_id":    member.UserID,
		"role":       member.Role,
	})

	return member, nil
}

func (s *DefaultService) UpdateAccountMember(ctx context.Context, actor models.Actor, accountID, memberID int64, req models.UpdateAccountMemberRequest, meta models.RequestMeta) (*models.AccountMember, error) {
	if err := validate.OneOf(req.Role, "Role must be OWNER, EDITOR, or VIEWER",
		"OWNER", "EDITOR", "VIEWER"); err != nil {
		return nil, err
	}

	member, err := s.repo.GetAccountMember(ctx, memberID, accountID)
	if err != nil {
		return nil, apperr.Internal("Error updating account member", err)
	}
	if member == nil {
		return nil, apperr.NotFound("Account member not found")
	}

	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal("Error updating account member", err)
	}
	if account == nil {
		return nil, apperr.NotFound("Account not found")
	}

	owner, err := s.isAccountOwner(ctx, account, actor)
	if err != nil {
		return nil, apperr.Internal("Error updating account member", err)
	}
	if !owner {
		return nil, apperr.Forbidden("Only account owners can update member roles")
	}

	changes := map[string]interface{}{"role": req.Role}
	if err := s.repo.UpdateAccountMember(ctx, memberID, changes); err != nil {
		return nil, apperr.Internal("Error updating account member", err)
	}
	member.Role = req.Role

	s.audit.Record(ctx, &actor, meta, audit.ActionUpdate, "ACCOUNT_MEMBER", memberID, changes)

	return member, nil
}

// RemoveAccountMember deletes a membership row. Besides the owner rules, a
// member may remove their own membership regardless of role.
func (s *DefaultService) RemoveAccountMember(ctx context.Context, actor models.Actor, accountID, memberID int64, meta models.RequestMeta) error {
	member, err := s.repo.GetAccountMember(ctx, memberID, accountID)
	if err != nil {
		return apperr.Internal("Error removing account member", err)
	}
	if member == nil {
		return apperr.NotFound("Account member not found")
	}

	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return apperr.Internal("Error removing account member", err)
	}
	if account == nil {
		return apperr.NotFound("Account not found")
	}

	if account.UserID != actor.ID && member.UserID != actor.ID {
		owner, err := s.isAccountOwner(ctx, account, actor)
		if err != nil {
			return apperr.Internal("Error removing account member", err)
		}
		if !owner {
			return apperr.Forbidden("Only account owners can remove members")
		}
	}

	if err := s.repo.DeleteAccountMember(ctx, memberID); err != nil {
		return apperr.Internal("Error removing account member", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionDelete, "ACCOUNT_MEMBER", memberID, nil)

	return nil
}
