package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/financialsite/server/internal/models"
)

// Category repository methods

func (r *PostgresRepository) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	query := `SELECT * FROM categories WHERE user_id = $1 ORDER BY id`

	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, query, userID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *PostgresRepository) GetCategoryOwned(ctx context.Context, id, userID int64) (*models.Category, error) {
	query := `SELECT * FROM categories WHERE id = $1 AND user_id = $2`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &category, nil
}

func (r *PostgresRepository) CategoryHasChildren(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE parent_id = $1)`

	var has bool
	err := r.db.GetContext(ctx, &has, query, id)
	return has, err
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (user_id, parent_id, name, type, icon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		category.UserID, category.ParentID, category.Name, category.Type,
		category.Icon).Scan(&category.ID)
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, id int64, changes map[string]interface{}) error {
	return r.updateByID(ctx, "categories", id, changes)
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

// Transaction repository methods

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND due_date >= $%d", len(args))
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND due_date <= $%d", len(args))
	}

	query += " ORDER BY due_date DESC"

	transactions := []models.Transaction{}
	err := r.db.SelectContext(ctx, &transactions, query, args...)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *PostgresRepository) GetTransactionOwned(ctx context.Context, id, userID int64) (*models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE id = $1 AND user_id = $2`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &txn, nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, account_id, category_id, description, amount,
		                          type, status, due_date, paid_date, observation,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	return r.db.QueryRowContext(ctx, query,
		txn.UserID, txn.AccountID, txn.CategoryID, txn.Description, txn.Amount,
		txn.Type, txn.Status, txn.DueDate, txn.PaidDate, txn.Observation,
		txn.CreatedAt, txn.UpdatedAt).Scan(&txn.ID)
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	changes["updated_at"] = time.Now().UTC()
	return r.updateByID(ctx, "transactions", id, changes)
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

// Goal repository methods

func (r *PostgresRepository) ListGoals(ctx context.Context, userID int64, filter models.GoalFilter) ([]models.Goal, error) {
	query := `SELECT * FROM goals WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	goals := []models.Goal{}
	err := r.db.SelectContext(ctx, &goals, query, args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *PostgresRepository) GetGoalOwned(ctx context.Context, id, userID int64) (*models.Goal, error) {
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	var goal models.Goal
	err := r.db.GetContext(ctx, &goal, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &goal, nil
}

func (r *PostgresRepository) CreateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, deadline, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	goal.CreatedAt = time.Now().UTC()

	return r.db.QueryRowContext(ctx, query,
		goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount,
		goal.Deadline, goal.Status, goal.CreatedAt).Scan(&goal.ID)
}

func (r *PostgresRepository) UpdateGoal(ctx context.Context, id int64, changes map[string]interface{}) error {
	return r.updateByID(ctx, "goals", id, changes)
}

func (r *PostgresRepository) DeleteGoal(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	return err
}

// Tag repository methods

func (r *PostgresRepository) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	query := `SELECT * FROM tags WHERE user_id = $1 ORDER BY id`

	tags := []models.Tag{}
	err := r.db.SelectContext(ctx, &tags, query, userID)
	if err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *PostgresRepository) GetTagOwned(ctx context.Context, id, userID int64) (*models.Tag, error) {
	query := `SELECT * FROM tags WHERE id = $1 AND user_id = $2`

	var tag models.Tag
	err := r.db.GetContext(ctx, &tag, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &tag, nil
}

func (r *PostgresRepository) TagNameTaken(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tags WHERE user_id = $1 AND name = $2 AND id <> $3)`

	var taken bool
	err := r.db.GetContext(ctx, &taken, query, userID, name, excludeID)
	return taken, err
}

func (r *PostgresRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tags (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		tag.UserID, tag.Name, tag.Color).Scan(&tag.ID)
}

func (r *PostgresRepository) UpdateTag(ctx context.Context, id int64, changes map[string]interface{}) error {
	return r.updateByID(ctx, "tags", id, changes)
}

func (r *PostgresRepository) DeleteTag(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return err
}
