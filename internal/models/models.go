package models

import (
	"encoding/json"
	"time"
)

// Actor is the authenticated identity performing a request. It is passed
// explicitly into every service call; there is no ambient per-request state.
type Actor struct {
	ID int64
}

// RequestMeta carries request attributes the audit trail records.
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

// User represents a registered user
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // never returned in JSON
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Account represents a financial account owned by a user
type Account struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"userId"`
	Name           string    `db:"name" json:"name"`
	Type           string    `db:"type" json:"type"` // WALLET, CHECKING, SAVINGS, INVESTMENT
	InitialBalance string    `db:"initial_balance" json:"initialBalance"`
	Color          *string   `db:"color" json:"color"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// AccountMember grants a user shared access to an account
type AccountMember struct {
	ID        int64     `db:"id" json:"id"`
	AccountID int64     `db:"account_id" json:"accountId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Role      string    `db:"role" json:"role"` // OWNER, EDITOR, VIEWER
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// AccountMemberWithUser is an AccountMember joined with the member's user
// row for listing.
type AccountMemberWithUser struct {
	ID        int64     `db:"id" json:"id"`
	AccountID int64     `db:"account_id" json:"accountId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UserName  *string   `db:"user_name" json:"userName"`
	UserEmail *string   `db:"user_email" json:"userEmail"`
}

// Category classifies transactions; categories may nest via ParentID
type Category struct {
	ID       int64   `db:"id" json:"id"`
	UserID   int64   `db:"user_id" json:"userId"`
	ParentID *int64  `db:"parent_id" json:"parentId"`
	Name     string  `db:"name" json:"name"`
	Type     string  `db:"type" json:"type"` // INCOME, EXPENSE
	Icon     *string `db:"icon" json:"icon"`
}

// Transaction represents a single bookkeeping entry
type Transaction struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"userId"`
	AccountID   int64      `db:"account_id" json:"accountId"`
	CategoryID  *int64     `db:"category_id" json:"categoryId"`
	Description string     `db:"description" json:"description"`
	Amount      string     `db:"amount" json:"amount"`
	Type        string     `db:"type" json:"type"`     // INCOME, EXPENSE, TRANSFER
	Status      string     `db:"status" json:"status"` // PENDING, PAID
	DueDate     time.Time  `db:"due_date" json:"dueDate"`
	PaidDate    *time.Time `db:"paid_date" json:"paidDate"`
	Observation *string    `db:"observation" json:"observation"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Goal represents a savings goal
type Goal struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"userId"`
	Name          string    `db:"name" json:"name"`
	TargetAmount  string    `db:"target_amount" json:"targetAmount"`
	CurrentAmount string    `db:"current_amount" json:"currentAmount"`
	Deadline      time.Time `db:"deadline" json:"deadline"`
	Status        string    `db:"status" json:"status"` // IN_PROGRESS, COMPLETED, FAILED
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Tag is a user-defined label, unique per user by name
type Tag struct {
	ID     int64   `db:"id" json:"id"`
	UserID int64   `db:"user_id" json:"userId"`
	Name   string  `db:"name" json:"name"`
	Color  *string `db:"color" json:"color"`
}

// AuditLog is an append-only record of one mutation
type AuditLog struct {
	ID        int64           `db:"id" json:"id"`
	UserID    *int64          `db:"user_id" json:"userId"`
	Action    string          `db:"action" json:"action"` // CREATE, UPDATE, DELETE, LOGIN
	Entity    string          `db:"entity" json:"entity"`
	EntityID  int64           `db:"entity_id" json:"entityId"`
	Changes   json.RawMessage `db:"changes" json:"changes"`
	IPAddress *string         `db:"ip_address" json:"ipAddress"`
	UserAgent *string         `db:"user_agent" json:"userAgent"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// AuditLogWithUser is an AuditLog joined with the acting user's name.
type AuditLogWithUser struct {
	AuditLog
	UserName *string `db:"user_name" json:"userName"`
}
