package api

import (
	"net/http"

	"github.com/financialsite/server/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.svc.ListAccounts(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Accounts retrieved successfully", accounts)
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	account, err := h.svc.CreateAccount(c.Request.Context(), actorFrom(c), req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, "Account created successfully", account)
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "account")
	if !ok {
		return
	}

	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	account, err := h.svc.UpdateAccount(c.Request.Context(), actorFrom(c), id, req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Account updated successfully", account)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "account")
	if !ok {
		return
	}

	if err := h.svc.DeleteAccount(c.Request.Context(), actorFrom(c), id, metaFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Account member handlers. Members nest under an account identifier.

func (h *Handler) ListAccountMembers(c *gin.Context) {
	accountID, ok := h.parseIDParam(c, "account_id", "account")
	if !ok {
		return
	}

	members, err := h.svc.ListAccountMembers(c.Request.Context(), actorFrom(c), accountID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Account members retrieved successfully", members)
}

func (h *Handler) AddAccountMember(c *gin.Context) {
	accountID, ok := h.parseIDParam(c, "account_id", "account")
	if !ok {
		return
	}

	var req models.AddAccountMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	member, err := h.svc.AddAccountMember(c.Request.Context(), actorFrom(c), accountID, req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, "Account member added successfully", member)
}

func (h *Handler) UpdateAccountMember(c *gin.Context) {
	accountID, ok := h.parseIDParam(c, "account_id", "account")
	if !ok {
		return
	}
	memberID, ok := h.parseIDParam(c, "id", "member")
	if !ok {
		return
	}

	var req models.UpdateAccountMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	member, err := h.svc.UpdateAccountMember(c.Request.Context(), actorFrom(c), accountID, memberID, req, metaFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, "Account member updated successfully", member)
}

func (h *Handler) RemoveAccountMember(c *gin.Context) {
	accountID, ok := h.parseIDParam(c, "account_id", "account")
	if !ok {
		return
	}
	memberID, ok := h.parseIDParam(c, "id", "member")
	if !ok {
		return
	}

	if err := h.svc.RemoveAccountMember(c.Request.Context(), actorFrom(c), accountID, memberID, metaFrom(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
