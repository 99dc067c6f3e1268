package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/financialsite/server/internal/models"
)

// MemoryRepository is an in-memory Repository used by the hermetic test
// suite. It mirrors the PostgreSQL implementation's observable behavior,
// including nil-on-not-found lookups and partial updates.
type MemoryRepository struct {
	mu sync.Mutex

	nextID       int64
	users        map[int64]*models.User
	accounts     map[int64]*models.Account
	members      map[int64]*models.AccountMember
	categories   map[int64]*models.Category
	transactions map[int64]*models.Transaction
	goals        map[int64]*models.Goal
	tags         map[int64]*models.Tag
	auditLogs    map[int64]*models.AuditLog
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:       0,
		users:        map[int64]*models.User{},
		accounts:     map[int64]*models.Account{},
		members:      map[int64]*models.AccountMember{},
		categories:   map[int64]*models.Category{},
		transactions: map[int64]*models.Transaction{},
		goals:        map[int64]*models.Goal{},
		tags:         map[int64]*models.Tag{},
		auditLogs:    map[int64]*models.AuditLog{},
	}
}

func (r *MemoryRepository) newID() int64 {
	r.nextID++
	return r.nextID
}

func sortedIDs[T any](m map[int64]*T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// User operations

func (r *MemoryRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.newID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range sortedIDs(r.users) {
		if r.users[id].Email == email {
			copied := *r.users[id]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) UpdateUser(_ context.Context, id int64, changes map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || len(changes) == 0 {
		return nil
	}
	for col, v := range changes {
		switch col {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "password_hash":
			u.PasswordHash = v.(string)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryRepository) DeleteUser(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

// Account operations

func (r *MemoryRepository) ListAccounts(_ context.Context, userID int64) ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Account{}
	for _, id := range sortedIDs(r.accounts) {
		if r.accounts[id].UserID == userID {
			out = append(out, *r.accounts[id])
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetAccount(_ context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetAccountOwned(_ context.Context, id, userID int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.accounts[id]; ok && a.UserID == userID {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) CreateAccount(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.ID = r.newID()
	account.CreatedAt = time.Now().UTC()
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *MemoryRepository) UpdateAccount(_ context.Context, id int64, changes map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil
	}
	for col, v := range changes {
		switch col {
		case "name":
			a.Name = v.(string)
		case "type":
			a.Type = v.(string)
		case "color":
			a.Color = v.(*string)
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteAccount(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, id)
	for mid, m := range r.members {
		if m.AccountID == id {
			delete(r.members, mid)
		}
	}
	return nil
}

// Account membership operations

func (r *MemoryRepository) ListAccountMembers(_ context.Context, accountID int64) ([]models.AccountMemberWithUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.AccountMemberWithUser{}
	for _, id := range sortedIDs(r.members) {
		m := r.members[id]
		if m.AccountID != accountID {
			continue
		}
		row := models.AccountMemberWithUser{
			ID:        m.ID,
			AccountID: m.AccountID,
			UserID:    m.UserID,
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		}
		if u, ok := r.users[m.UserID]; ok {
			name, email := u.Name, u.Email
			row.UserName = &name
			row.UserEmail = &email
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *MemoryRepository) GetAccountMember(_ context.Context, id, accountID int64) (*models.AccountMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.members[id]; ok && m.AccountID == accountID {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetMembership(_ context.Context, accountID, userID int64) (*models.AccountMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range sortedIDs(r.members) {
		m := r.members[id]
		if m.AccountID == accountID && m.UserID == userID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) CreateAccountMember(_ context.Context, member *models.AccountMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member.ID = r.newID()
	member.CreatedAt = time.Now().UTC()
	stored := *member
	r.members[member.ID] = &stored
	return nil
}

func (r *MemoryRepository) UpdateAccountMember(_ context.Context, id int64, changes map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return nil
	}
	if v, ok := changes["role"]; ok {
		m.Role = v.(string)
	}
	return nil
}

func (r *MemoryRepository) DeleteAccountMember(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members, id)
	return nil
}

// Category operations

func (r *MemoryRepository) ListCategories(_ context.Context, userID int64) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Category{}
	for _, id := range sortedIDs(r.categories) {
		if r.categories[id].UserID == userID {
			out = append(out, *r.categories[id])
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetCategoryOwned(_ context.Context, id, userID int64) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.categories[id]; ok && c.UserID == userID {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) CategoryHasChildren(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) CreateCategory(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	category.ID = r.newID()
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *MemoryRepository) UpdateCategory(_ context.Context, id int64, changes map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return nil
	}
	for col, v := range changes {
		switch col {
		case "name":
			c.Name = v.(string)
		case "type":
			c.Type = v.(string)
		case "icon":
			c.Icon = v.(*string)
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteCategory(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.categories, id)
	return nil
}

// Transaction operations

func (r *MemoryRepository) ListTransactions(_ context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Transaction{}
	for _, id := range sortedIDs(r.transactions) {
		t := r.transactions[id]
		if t.UserID != userID {
			continue
		}
		if filter.AccountID != nil && t.AccountID != *filter.AccountID {
			continue
		}
		if filter.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			if t.DueDate.Before(*filter.StartDate) || t.DueDate.After(*filter.EndDate) {
				continue
			}
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	return out, nil
}

func (r *MemoryRepository) GetTransactionOwned(_ context.Context, id, userID int64) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.transactions[id]; ok && t.UserID == userID {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) CreateTransaction(_ context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn.ID = r.newID()
	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now
	stored := *txn
	r.transactions[txn.ID] = &stored
	return nil
}

func (r *MemoryRepository) UpdateTransaction(_ context.Context, id int64, changes map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[id]
	if !ok || len(changes) == 0 {
		return nil
	}
	for col, v := range changes {
		switch col {
		case "description":
			t.Description = v.(string)
		case "amount":
			t.Amount = v.(string)
		case "type":
			t.Type = v.(string)
		case "status":
			t.Status = v.(string)
		case "account_id":
			t.AccountID = v.(int64)
		case "category_id":
			t.CategoryID = v.(*int64)
		case "due_date":
			t.DueDate = v.(time.Time)
		case "paid_date":
			t.PaidDate = v.(*time.Time)
		case "observation":
			t.Observation = v.(*string)
		}
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryRepository) DeleteTransaction(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.transactions, id)
	return nil
}

// Goal operations

func (r *MemoryRepository) ListGoals(_ context.Context, userID int64, filter models.GoalFilter) ([]models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Goal{}
	for _, id := range sortedIDs(r.goals) {
		g := r.goals[id]
		if g.UserID != userID {
			continue
		}
		if filter.Status != "" && g.Status != filter.Status {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

func (r *MemoryRepository) GetGoalOwned(_ context.Context, id, userID int64) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.goals[id]; ok && g.UserID == userID {
		copied := *g
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) CreateGoal(_ context.Context, goal *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal.ID = r.newID()
	goal.CreatedAt = time.Now().UTC()
	stored := *goal
	r.goals[goal.ID] = &stored
	return nil
}

func (r *MemoryRepository) UpdateGoal(_ context.Context, id int64, changes map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok {
		return nil
	}
	for col, v := range changes {
		switch col {
		case "name":
			g.Name = v.(string)
		case "target_amount":
			g.TargetAmount = v.(string)
		case "current_amount":
			g.CurrentAmount = v.(string)
		case "deadline":
			g.Deadline = v.(time.Time)
		case "status":
			g.Status = v.(string)
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteGoal(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.goals, id)
	return nil
}

// Tag operations

func (r *MemoryRepository) ListTags(_ context.Context, userID int64) ([]models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Tag{}
	for _, id := range sortedIDs(r.tags) {
		if r.tags[id].UserID == userID {
			out = append(out, *r.tags[id])
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetTagOwned(_ context.Context, id, userID int64) (*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tags[id]; ok && t.UserID == userID {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (r *MemoryRepository) TagNameTaken(_ context.Context, userID int64, name string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tags {
		if t.UserID == userID && t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) CreateTag(_ context.Context, tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag.ID = r.newID()
	stored := *tag
	r.tags[tag.ID] = &stored
	return nil
}

func (r *MemoryRepository) UpdateTag(_ context.Context, id int64, changes map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tags[id]
	if !ok {
		return nil
	}
	for col, v := range changes {
		switch col {
		case "name":
			t.Name = v.(string)
		case "color":
			t.Color = v.(*string)
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteTag(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tags, id)
	return nil
}

// Audit log operations

func (r *MemoryRepository) CreateAuditLog(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.newID()
	entry.CreatedAt = time.Now().UTC()
	stored := *entry
	r.auditLogs[entry.ID] = &stored
	return nil
}

func (r *MemoryRepository) ListAuditLogs(_ context.Context, userID int64, filter models.AuditLogFilter) ([]models.AuditLogWithUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.AuditLogWithUser{}
	ids := sortedIDs(r.auditLogs)
	// newest first
	for i := len(ids) - 1; i >= 0; i-- {
		l := r.auditLogs[ids[i]]
		if l.UserID == nil || *l.UserID != userID {
			continue
		}
		if filter.Entity != "" && l.Entity != filter.Entity {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			if l.CreatedAt.Before(*filter.StartDate) || l.CreatedAt.After(*filter.EndDate) {
				continue
			}
		}
		row := models.AuditLogWithUser{AuditLog: *l}
		if u, ok := r.users[userID]; ok {
			name := u.Name
			row.UserName = &name
		}
		out = append(out, row)
		if len(out) == 100 {
			break
		}
	}
	return out, nil
}
