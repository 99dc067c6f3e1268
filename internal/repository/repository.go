package repository

import (
	"context"

	"github.com/financialsite/server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy.
// Partial updates take a map of column name to new value; callers only
// include the fields that actually changed.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateUser(ctx context.Context, id int64, changes map[string]interface{}) error
	DeleteUser(ctx context.Context, id int64) error

	// Account operations
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	GetAccountOwned(ctx context.Context, id, userID int64) (*models.Account, error)
	CreateAccount(ctx context.Context, account *models.Account) error
	UpdateAccount(ctx context.Context, id int64, changes map[string]interface{}) error
	DeleteAccount(ctx context.Context, id int64) error

	// Account membership operations
	ListAccountMembers(ctx context.Context, accountID int64) ([]models.AccountMemberWithUser, error)
	GetAccountMember(ctx context.Context, id, accountID int64) (*models.AccountMember, error)
	GetMembership(ctx context.Context, accountID, userID int64) (*models.AccountMember, error)
	CreateAccountMember(ctx context.Context, member *models.AccountMember) error
	UpdateAccountMember(ctx context.Context, id int64, changes map[string]interface{}) error
	DeleteAccountMember(ctx context.Context, id int64) error

	// Category operations
	ListCategories(ctx context.Context, userID int64) ([]models.Category, error)
	GetCategoryOwned(ctx context.Context, id, userID int64) (*models.Category, error)
	CategoryHasChildren(ctx context.Context, id int64) (bool, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id int64, changes map[string]interface{}) error
	DeleteCategory(ctx context.Context, id int64) error

	// Transaction operations
	ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error)
	GetTransactionOwned(ctx context.Context, id, userID int64) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	UpdateTransaction(ctx context.Context, id int64, changes map[string]interface{}) error
	DeleteTransaction(ctx context.Context, id int64) error

	// Goal operations
	ListGoals(ctx context.Context, userID int64, filter models.GoalFilter) ([]models.Goal, error)
	GetGoalOwned(ctx context.Context, id, userID int64) (*models.Goal, error)
	CreateGoal(ctx context.Context, goal *models.Goal) error
	UpdateGoal(ctx context.Context, id int64, changes map[string]interface{}) error
	DeleteGoal(ctx context.Context, id int64) error

	// Tag operations
	ListTags(ctx context.Context, userID int64) ([]models.Tag, error)
	GetTagOwned(ctx context.Context, id, userID int64) (*models.Tag, error)
	TagNameTaken(ctx context.Context, userID int64, name string, excludeID int64) (bool, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	UpdateTag(ctx context.Context, id int64, changes map[string]interface{}) error
	DeleteTag(ctx context.Context, id int64) error

	// Audit log operations. Audit logs are append-only: there is no update
	// or delete, by design.
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, userID int64, filter models.AuditLogFilter) ([]models.AuditLogWithUser, error)
}
