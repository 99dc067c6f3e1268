// Package audit records a best-effort trail entry for every mutation.
// Recording is fire-and-forget relative to the caller: a failed audit write
// is logged server-side and never fails or rolls back the primary operation.
package audit

import (
	"context"
	"encoding/json"

	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/repository"
	"github.com/financialsite/server/internal/utils"
)

// Audit actions.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
)

// Recorder writes audit entries through the repository.
type Recorder struct {
	repo   repository.Repository
	logger *utils.Logger
}

// NewRecorder creates a new audit Recorder.
func NewRecorder(repo repository.Repository, logger *utils.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

// Record writes one audit entry. changes may be nil (deletes carry no
// snapshot); any non-nil value is serialized to JSON. Errors are swallowed.
func (r *Recorder) Record(ctx context.Context, actor *models.Actor, meta models.RequestMeta, action, entity string, entityID int64, changes interface{}) {
	entry := &models.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}

	if actor != nil {
		id := actor.ID
		entry.UserID = &id
	}
	if meta.IP != "" {
		ip := meta.IP
		entry.IPAddress = &ip
	}
	if meta.UserAgent != "" {
		ua := meta.UserAgent
		entry.UserAgent = &ua
	}

	if changes != nil {
		payload, err := json.Marshal(changes)
		if err != nil {
			r.logger.Error("audit: failed to serialize changes for %s %s %d: %v", action, entity, entityID, err)
		} else {
			entry.Changes = payload
		}
	}

	if err := r.repo.CreateAuditLog(ctx, entry); err != nil {
		r.logger.Error("audit: failed to record %s %s %d: %v", action, entity, entityID, err)
	}
}
