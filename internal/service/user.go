package service

import (
	"context"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

// GetUser returns the actor's own user row.
func (s *DefaultService) GetUser(ctx context.Context, actor models.Actor) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal("Error fetching user data", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

// CreateUser registers a new user. Open endpoint: the audit entry is
// attributed to the freshly created user.
func (s *DefaultService) CreateUser(ctx context.Context, req models.CreateUserRequest, meta models.RequestMeta) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Name, email and password are required")
	}
	if err := validate.Email(req.Email); err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, apperr.Internal("Error creating user", err)
	}
	if taken {
		return nil, apperr.Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Error creating user", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, apperr.Internal("Error creating user", err)
	}

	s.audit.Record(ctx, &models.Actor{ID: user.ID}, meta, audit.ActionCreate, "USER", user.ID, nil)

	return user, nil
}

// UpdateUser modifies the actor's own profile. A password change requires
// the current password to verify before the new hash is stored; plaintext
// passwords are never persisted or audited.
func (s *DefaultService) UpdateUser(ctx context.Context, actor models.Actor, id int64, req models.UpdateUserRequest, meta models.RequestMeta) (*models.User, error) {
	existing, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Error updating user", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("User not found")
	}
	if existing.ID != actor.ID {
		return nil, apperr.Forbidden("You do not have permission to modify this user")
	}

	changes := map[string]interface{}{}
	audited := map[string]interface{}{}

	if req.Name.Set && req.Name.Valid && req.Name.Value != "" {
		changes["name"] = req.Name.Value
		audited["name"] = req.Name.Value
		existing.Name = req.Name.Value
	}

	if req.Email.Set && req.Email.Valid && req.Email.Value != "" {
		if err := validate.Email(req.Email.Value); err != nil {
			return nil, err
		}
		taken, err := s.repo.EmailTaken(ctx, req.Email.Value, id)
		if err != nil {
			return nil, apperr.Internal("Error updating user", err)
		}
		if taken {
			return nil, apperr.Conflict("Email already registered by another user")
		}
		changes["email"] = req.Email.Value
		audited["email"] = req.Email.Value
		existing.Email = req.Email.Value
	}

	if req.NewPassword.Set && req.NewPassword.Valid && req.NewPassword.Value != "" {
		if !req.CurrentPassword.Set || !req.CurrentPassword.Valid || req.CurrentPassword.Value == "" {
			return nil, apperr.Validation("Current password is required to set new password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(req.CurrentPassword.Value)); err != nil {
			return nil, apperr.Validation("Current password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword.Value), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal("Error updating user", err)
		}
		changes["password_hash"] = string(hash)
		audited["passwordChanged"] = true
		existing.PasswordHash = string(hash)
	}

	if err := s.repo.UpdateUser(ctx, id, changes); err != nil {
		return nil, apperr.Internal("Error updating user", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionUpdate, "USER", id, audited)

	return existing, nil
}

// DeleteUser removes the actor's own user row.
func (s *DefaultService) DeleteUser(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error {
	existing, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return apperr.Internal("Error deleting user", err)
	}
	if existing == nil {
		return apperr.NotFound("User not found")
	}
	if existing.ID != actor.ID {
		return apperr.Forbidden("You do not have permission to modify this user")
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return apperr.Internal("Error deleting user", err)
	}

	s.audit.Record(ctx, &actor, meta, audit.ActionDelete, "USER", id, nil)

	return nil
}
