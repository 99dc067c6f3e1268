package api

import (
	"github.com/financialsite/server/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAuditLogs(c *gin.Context) {
	filter := models.AuditLogFilter{
		Entity: c.Query("entity"),
		Action: c.Query("action"),
	}

	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}
	filter.StartDate = start
	filter.EndDate = end

	logs, err := h.svc.ListAuditLogs(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Audit logs retrieved successfully", logs)
}

func (h *Handler) CreateAuditLog(c *gin.Context) {
	var req models.CreateAuditLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	entry, err := h.svc.CreateAuditLog(c.Request.Context(), actorFrom(c), req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, "Audit log created successfully", entry)
}

// UpdateAuditLog and DeleteAuditLog always fail: the trail is immutable.
// The id is not even parsed; the answer is the same for any identifier.

func (h *Handler) UpdateAuditLog(c *gin.Context) {
	h.respondError(c, h.svc.UpdateAuditLog(c.Request.Context(), actorFrom(c), 0))
}

func (h *Handler) DeleteAuditLog(c *gin.Context) {
	h.respondError(c, h.svc.DeleteAuditLog(c.Request.Context(), actorFrom(c), 0))
}
