package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/validate"
	"github.com/gin-gonic/gin"
)

// Category handlers

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Categories retrieved successfully", categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	category, err := h.svc.CreateCategory(c.Request.Context(), actorFrom(c), req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, "Category created successfully", category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "category")
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	category, err := h.svc.UpdateCategory(c.Request.Context(), actorFrom(c), id, req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Category updated successfully", category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "category")
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(c.Request.Context(), actorFrom(c), id, metaFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Transaction handlers

func (h *Handler) ListTransactions(c *gin.Context) {
	filter, ok := h.transactionFilter(c)
	if !ok {
		return
	}

	transactions, err := h.svc.ListTransactions(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Transactions retrieved successfully", transactions)
}

func (h *Handler) transactionFilter(c *gin.Context) (models.TransactionFilter, bool) {
	filter := models.TransactionFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}

	if raw := c.Query("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.badRequest(c, "Invalid account ID")
			return filter, false
		}
		filter.AccountID = &id
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.badRequest(c, "Invalid category ID")
			return filter, false
		}
		filter.CategoryID = &id
	}

	start, end, ok := h.dateRange(c)
	if !ok {
		return filter, false
	}
	filter.StartDate = start
	filter.EndDate = end

	return filter, true
}

// dateRange reads the optional start_date/end_date pair; the range only
// applies when both are present.
func (h *Handler) dateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	rawStart, rawEnd := c.Query("start_date"), c.Query("end_date")
	if rawStart == "" || rawEnd == "" {
		return nil, nil, true
	}

	start, err := validate.Date(rawStart, "Invalid start date")
	if err != nil {
		h.badRequest(c, "Invalid start date")
		return nil, nil, false
	}
	end, err := validate.Date(rawEnd, "Invalid end date")
	if err != nil {
		h.badRequest(c, "Invalid end date")
		return nil, nil, false
	}
	return &start, &end, true
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	txn, err := h.svc.CreateTransaction(c.Request.Context(), actorFrom(c), req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, "Transaction created successfully", txn)
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "transaction")
	if !ok {
		return
	}

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	txn, err := h.svc.UpdateTransaction(c.Request.Context(), actorFrom(c), id, req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Transaction updated successfully", txn)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "transaction")
	if !ok {
		return
	}

	if err := h.svc.DeleteTransaction(c.Request.Context(), actorFrom(c), id, metaFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Goal handlers

func (h *Handler) ListGoals(c *gin.Context) {
	filter := models.GoalFilter{Status: c.Query("status")}

	goals, err := h.svc.ListGoals(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Goals retrieved successfully", goals)
}

func (h *Handler) CreateGoal(c *gin.Context) {
	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	goal, err := h.svc.CreateGoal(c.Request.Context(), actorFrom(c), req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, "Goal created successfully", goal)
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "goal")
	if !ok {
		return
	}

	var req models.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	goal, err := h.svc.UpdateGoal(c.Request.Context(), actorFrom(c), id, req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Goal updated successfully", goal)
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "goal")
	if !ok {
		return
	}

	if err := h.svc.DeleteGoal(c.Request.Context(), actorFrom(c), id, metaFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Tag handlers

func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.svc.ListTags(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Tags retrieved successfully", tags)
}

func (h *Handler) CreateTag(c *gin.Context) {
	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	tag, err := h.svc.CreateTag(c.Request.Context(), actorFrom(c), req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, "Tag created successfully", tag)
}

func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "tag")
	if !ok {
		return
	}

	var req models.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	tag, err := h.svc.UpdateTag(c.Request.Context(), actorFrom(c), id, req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Tag updated successfully", tag)
}

func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "tag")
	if !ok {
		return
	}

	if err := h.svc.DeleteTag(c.Request.Context(), actorFrom(c), id, metaFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
