package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/financialsite/server/internal/models"
)

// Audit log repository methods. Inserts only; the audit trail is append-only
// and no update or delete statement exists for it anywhere in the codebase.

func (r *PostgresRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (user_id, action, entity, entity_id, changes, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	entry.CreatedAt = time.Now().UTC()

	var changes interface{}
	if len(entry.Changes) > 0 {
		changes = []byte(entry.Changes)
	}

	return r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Action, entry.Entity, entry.EntityID, changes,
		entry.IPAddress, entry.UserAgent, entry.CreatedAt).Scan(&entry.ID)
}

func (r *PostgresRepository) ListAuditLogs(ctx context.Context, userID int64, filter models.AuditLogFilter) ([]models.AuditLogWithUser, error) {
	query := `
		SELECT al.id, al.user_id, al.action, al.entity, al.entity_id, al.changes,
		       al.ip_address, al.user_agent, al.created_at, u.name AS user_name
		FROM audit_logs al
		LEFT JOIN users u ON al.user_id = u.id
		WHERE al.user_id = $1
	`
	args := []interface{}{userID}

	if filter.Entity != "" {
		args = append(args, filter.Entity)
		query += fmt.Sprintf(" AND al.entity = $%d", len(args))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND al.action = $%d", len(args))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND al.created_at >= $%d", len(args))
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND al.created_at <= $%d", len(args))
	}

	query += " ORDER BY al.created_at DESC LIMIT 100"

	logs := []models.AuditLogWithUser{}
	err := r.db.SelectContext(ctx, &logs, query, args...)
	if err != nil {
		return nil, err
	}

	return logs, nil
}
