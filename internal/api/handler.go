package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/service"
	"github.com/financialsite/server/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler wires HTTP requests to the service layer
type Handler struct {
	svc    service.Service
	logger *utils.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service, logger *utils.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(RequestIDMiddleware())

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "timestamp": time.Now().UTC()})
	})

	// Open endpoints: registration and login
	api.POST("/auth/login", h.Login)
	api.POST("/users", h.CreateUser)

	auth := api.Group("")
	auth.Use(AuthMiddleware())

	auth.GET("/users", h.GetUser)
	auth.PUT("/users/:id", h.UpdateUser)
	auth.DELETE("/users/:id", h.DeleteUser)

	auth.GET("/accounts", h.ListAccounts)
	auth.POST("/accounts", h.CreateAccount)
	auth.PUT("/accounts/:id", h.UpdateAccount)
	auth.DELETE("/accounts/:id", h.DeleteAccount)

	auth.GET("/transactions", h.ListTransactions)
	auth.POST("/transactions", h.CreateTransaction)
	auth.PUT("/transactions/:id", h.UpdateTransaction)
	auth.DELETE("/transactions/:id", h.DeleteTransaction)

	auth.GET("/goals", h.ListGoals)
	auth.POST("/goals", h.CreateGoal)
	auth.PUT("/goals/:id", h.UpdateGoal)
	auth.DELETE("/goals/:id", h.DeleteGoal)

	auth.GET("/tags", h.ListTags)
	auth.POST("/tags", h.CreateTag)
	auth.PUT("/tags/:id", h.UpdateTag)
	auth.DELETE("/tags/:id", h.DeleteTag)

	auth.GET("/categories", h.ListCategories)
	auth.POST("/categories", h.CreateCategory)
	auth.PUT("/categories/:id", h.UpdateCategory)
	auth.DELETE("/categories/:id", h.DeleteCategory)

	auth.GET("/account-members/account/:account_id", h.ListAccountMembers)
	auth.POST("/account-members/account/:account_id", h.AddAccountMember)
	auth.PUT("/account-members/account/:account_id/:id", h.UpdateAccountMember)
	auth.DELETE("/account-members/account/:account_id/:id", h.RemoveAccountMember)

	auth.GET("/audit-logs", h.ListAuditLogs)
	auth.POST("/audit-logs", h.CreateAuditLog)
	auth.PUT("/audit-logs/:id", h.UpdateAuditLog)
	auth.DELETE("/audit-logs/:id", h.DeleteAuditLog)
}

// actorFrom extracts the authenticated actor set by AuthMiddleware.
func actorFrom(c *gin.Context) models.Actor {
	return models.Actor{ID: c.MustGet("userId").(int64)}
}

// metaFrom captures client attributes for the audit trail.
func metaFrom(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString("requestId"),
	}
}

// parseIDParam reads a positive numeric path parameter. Malformed ids
// (empty, non-numeric, zero or negative) fail uniformly before any lookup.
func (h *Handler) parseIDParam(c *gin.Context, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid " + label + " ID"})
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error to its status code. Unexpected errors
// collapse to a generic 500 body with the detail logged server-side.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request %s %s %s failed: %v",
			c.GetString("requestId"), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, models.ErrorResponse{Error: apperr.MessageOf(err)})
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.SuccessResponse{Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.SuccessResponse{Message: message, Data: data})
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: message})
}
