package models

import (
	"encoding/json"
	"time"
)

// Request models. Create bodies carry plain fields; update bodies use
// Optional slots so an omitted field and an explicitly cleared one stay
// distinguishable. Field names follow the API's snake_case contract.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name            Optional[string] `json:"name"`
	Email           Optional[string] `json:"email"`
	CurrentPassword Optional[string] `json:"currentPassword"`
	NewPassword     Optional[string] `json:"newPassword"`
}

type CreateAccountRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	InitialBalance string `json:"initial_balance"`
	Color          string `json:"color"`
}

type UpdateAccountRequest struct {
	Name  Optional[string] `json:"name"`
	Type  Optional[string] `json:"type"`
	Color Optional[string] `json:"color"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Icon     string `json:"icon"`
	ParentID *int64 `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	Name Optional[string] `json:"name"`
	Type Optional[string] `json:"type"`
	Icon Optional[string] `json:"icon"`
}

type CreateTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	AccountID   *int64 `json:"account_id"`
	CategoryID  *int64 `json:"category_id"`
	DueDate     string `json:"due_date"`
	PaidDate    string `json:"paid_date"`
	Status      string `json:"status"`
	Observation string `json:"observation"`
}

type UpdateTransactionRequest struct {
	Description Optional[string] `json:"description"`
	Amount      Optional[string] `json:"amount"`
	Type        Optional[string] `json:"type"`
	AccountID   Optional[int64]  `json:"account_id"`
	CategoryID  Optional[int64]  `json:"category_id"`
	DueDate     Optional[string] `json:"due_date"`
	PaidDate    Optional[string] `json:"paid_date"`
	Status      Optional[string] `json:"status"`
	Observation Optional[string] `json:"observation"`
}

type CreateGoalRequest struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"`
}

type UpdateGoalRequest struct {
	Name          Optional[string] `json:"name"`
	TargetAmount  Optional[string] `json:"target_amount"`
	CurrentAmount Optional[string] `json:"current_amount"`
	Deadline      Optional[string] `json:"deadline"`
	Status        Optional[string] `json:"status"`
}

type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateTagRequest struct {
	Name  Optional[string] `json:"name"`
	Color Optional[string] `json:"color"`
}

type AddAccountMemberRequest struct {
	UserID *int64 `json:"user_id"`
	Role   string `json:"role"`
}

type UpdateAccountMemberRequest struct {
	Role string `json:"role"`
}

type CreateAuditLogRequest struct {
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  *int64          `json:"entity_id"`
	Changes   json.RawMessage `json:"changes"`
	IPAddress string          `json:"ip_address"`
	UserAgent string          `json:"user_agent"`
}

// List filters. A nil/empty field means "no constraint"; set fields are
// combined conjunctively.

type TransactionFilter struct {
	AccountID  *int64
	CategoryID *int64
	Type       string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}

type GoalFilter struct {
	Status string
}

type AuditLogFilter struct {
	Entity    string
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
}

// Response envelope: {message, data} on success, {error} on failure.

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginData is the payload returned by a successful login.
type LoginData struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	User      *User  `json:"user"`
}
