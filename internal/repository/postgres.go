package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/financialsite/server/internal/models"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// updateByID builds a partial UPDATE from the changes map. Column order is
// sorted so generated SQL is deterministic.
func (r *PostgresRepository) updateByID(ctx context.Context, table string, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}

	cols := make([]string, 0, len(changes))
	for col := range changes {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	set := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		set = append(set, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, changes[col])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(set, ", "), len(args))
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// User repository methods

func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	return r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`

	var taken bool
	err := r.db.GetContext(ctx, &taken, query, email, excludeID)
	return taken, err
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	changes["updated_at"] = time.Now().UTC()
	return r.updateByID(ctx, "users", id, changes)
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// Account repository methods

func (r *PostgresRepository) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	query := `SELECT * FROM accounts WHERE user_id = $1 ORDER BY id`

	accounts := []models.Account{}
	err := r.db.SelectContext(ctx, &accounts, query, userID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *PostgresRepository) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT * FROM accounts WHERE id = $1`

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Account not found
		}
		return nil, err
	}

	return &account, nil
}

func (r *PostgresRepository) GetAccountOwned(ctx context.Context, id, userID int64) (*models.Account, error) {
	query := `SELECT * FROM accounts WHERE id = $1 AND user_id = $2`

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (r *PostgresRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, type, initial_balance, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	account.CreatedAt = time.Now().UTC()

	return r.db.QueryRowContext(ctx, query,
		account.UserID, account.Name, account.Type, account.InitialBalance,
		account.Color, account.CreatedAt).Scan(&account.ID)
}

func (r *PostgresRepository) UpdateAccount(ctx context.Context, id int64, changes map[string]interface{}) error {
	return r.updateByID(ctx, "accounts", id, changes)
}

func (r *PostgresRepository) DeleteAccount(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}

// Account membership repository methods

func (r *PostgresRepository) ListAccountMembers(ctx context.Context, accountID int64) ([]models.AccountMemberWithUser, error) {
	query := `
		SELECT am.id, am.account_id, am.user_id, am.role, am.created_at,
		       u.name AS user_name, u.email AS user_email
		FROM account_members am
		LEFT JOIN users u ON am.user_id = u.id
		WHERE am.account_id = $1
		ORDER BY am.id
	`

	members := []models.AccountMemberWithUser{}
	err := r.db.SelectContext(ctx, &members, query, accountID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *PostgresRepository) GetAccountMember(ctx context.Context, id, accountID int64) (*models.AccountMember, error) {
	query := `SELECT * FROM account_members WHERE id = $1 AND account_id = $2`

	var member models.AccountMember
	err := r.db.GetContext(ctx, &member, query, id, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

func (r *PostgresRepository) GetMembership(ctx context.Context, accountID, userID int64) (*models.AccountMember, error) {
	query := `SELECT * FROM account_members WHERE account_id = $1 AND user_id = $2`

	var member models.AccountMember
	err := r.db.GetContext(ctx, &member, query, accountID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

func (r *PostgresRepository) CreateAccountMember(ctx context.Context, member *models.AccountMember) error {
	query := `
		INSERT INTO account_members (account_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	member.CreatedAt = time.Now().UTC()

	return r.db.QueryRowContext(ctx, query,
		member.AccountID, member.UserID, member.Role, member.CreatedAt).Scan(&member.ID)
}

func (r *PostgresRepository) UpdateAccountMember(ctx context.Context, id int64, changes map[string]interface{}) error {
	return r.updateByID(ctx, "account_members", id, changes)
}

func (r *PostgresRepository) DeleteAccountMember(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM account_members WHERE id = $1`, id)
	return err
}
