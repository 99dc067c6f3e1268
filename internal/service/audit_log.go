package service

import (
	"context"
	"strings"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
)

func (s *DefaultService) ListAuditLogs(ctx context.Context, actor models.Actor, filter models.AuditLogFilter) ([]models.AuditLogWithUser, error) {
	logs, err := s.repo.ListAuditLogs(ctx, actor.ID, filter)
	if err != nil {
		return nil, apperr.Internal("Error fetching audit logs", err)
	}
	return logs, nil
}

// CreateAuditLog records a manual audit entry on behalf of the actor.
func (s *DefaultService) CreateAuditLog(ctx context.Context, actor models.Actor, req models.CreateAuditLogRequest, meta models.RequestMeta) (*models.AuditLog, error) {
	if err := validate.OneOf(req.Action, "Action must be CREATE, UPDATE, DELETE, or LOGIN",
		"CREATE", "UPDATE", "DELETE", "LOGIN"); err != nil {
		return nil, err
	}

	entity := strings.TrimSpace(req.Entity)
	if entity == "" {
		return nil, apperr.Validation("Entity is required")
	}

	if req.EntityID == nil || *req.EntityID <= 0 {
		return nil, apperr.Validation("Entity ID is required")
	}

	actorID := actor.ID
	entry := &models.AuditLog{
		UserID:   &actorID,
		Action:   req.Action,
		Entity:   entity,
		EntityID: *req.EntityID,
		Changes:  req.Changes,
	}

	ip := req.IPAddress
	if ip == "" {
		ip = meta.IP
	}
	if ip != "" {
		entry.IPAddress = &ip
	}

	ua := req.UserAgent
	if ua == "" {
		ua = meta.UserAgent
	}
	if ua != "" {
		entry.UserAgent = &ua
	}

	if err := s.repo.CreateAuditLog(ctx, entry); err != nil {
		return nil, apperr.Internal("Error creating audit log", err)
	}

	return entry, nil
}

// UpdateAuditLog always fails: the audit trail is immutable.
func (s *DefaultService) UpdateAuditLog(_ context.Context, _ models.Actor, _ int64) error {
	return apperr.Forbidden("Audit logs cannot be updated")
}

// DeleteAuditLog always fails: the audit trail is immutable.
func (s *DefaultService) DeleteAuditLog(_ context.Context, _ models.Actor, _ int64) error {
	return apperr.Forbidden("Audit logs cannot be deleted")
}
