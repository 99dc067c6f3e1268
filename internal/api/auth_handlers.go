package api

import (
	"net/http"

	"github.com/financialsite/server/internal/models"
	"github.com/gin-gonic/gin"
)

// Login authenticates a user and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	data, err := h.svc.Login(c.Request.Context(), req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Login successful", data)
}

// GetUser returns the authenticated user's profile.
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "User data retrieved", user)
}

// CreateUser registers a new user. This endpoint is not authenticated.
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, "User created successfully", user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), actorFrom(c), id, req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "User updated successfully", user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), actorFrom(c), id, metaFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
