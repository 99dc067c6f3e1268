package service

import (
	"context"
	"time"

	"github.com/financialsite/server/internal/apperr"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/repository"
	"github.com/financialsite/server/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service defines all the business logic operations. Every operation takes
// the acting identity explicitly; the flow for mutations is always
// authorize, validate, persist, audit.
type Service interface {
	// Authentication
	Login(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (*models.LoginData, error)

	// Users
	GetUser(ctx context.Context, actor models.Actor) (*models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest, meta models.RequestMeta) (*models.User, error)
	UpdateUser(ctx context.Context, actor models.Actor, id int64, req models.UpdateUserRequest, meta models.RequestMeta) (*models.User, error)
	DeleteUser(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error

	// Accounts
	ListAccounts(ctx context.Context, actor models.Actor) ([]models.Account, error)
	CreateAccount(ctx context.Context, actor models.Actor, req models.CreateAccountRequest, meta models.RequestMeta) (*models.Account, error)
	UpdateAccount(ctx context.Context, actor models.Actor, id int64, req models.UpdateAccountRequest, meta models.RequestMeta) (*models.Account, error)
	DeleteAccount(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error

	// Account members
	ListAccountMembers(ctx context.Context, actor models.Actor, accountID int64) ([]models.AccountMemberWithUser, error)
	AddAccountMember(ctx context.Context, actor models.Actor, accountID int64, req models.AddAccountMemberRequest, meta models.RequestMeta) (*models.AccountMember, error)
	UpdateAccountMember(ctx context.Context, actor models.Actor, accountID, memberID int64, req models.UpdateAccountMemberRequest, meta models.RequestMeta) (*models.AccountMember, error)
	RemoveAccountMember(ctx context.Context, actor models.Actor, accountID, memberID int64, meta models.RequestMeta) error

	// Categories
	ListCategories(ctx context.Context, actor models.Actor) ([]models.Category, error)
	CreateCategory(ctx context.Context, actor models.Actor, req models.CreateCategoryRequest, meta models.RequestMeta) (*models.Category, error)
	UpdateCategory(ctx context.Context, actor models.Actor, id int64, req models.UpdateCategoryRequest, meta models.RequestMeta) (*models.Category, error)
	DeleteCategory(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error

	// Transactions
	ListTransactions(ctx context.Context, actor models.Actor, filter models.TransactionFilter) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, actor models.Actor, req models.CreateTransactionRequest, meta models.RequestMeta) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, actor models.Actor, id int64, req models.UpdateTransactionRequest, meta models.RequestMeta) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error

	// Goals
	ListGoals(ctx context.Context, actor models.Actor, filter models.GoalFilter) ([]models.Goal, error)
	CreateGoal(ctx context.Context, actor models.Actor, req models.CreateGoalRequest, meta models.RequestMeta) (*models.Goal, error)
	UpdateGoal(ctx context.Context, actor models.Actor, id int64, req models.UpdateGoalRequest, meta models.RequestMeta) (*models.Goal, error)
	DeleteGoal(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error

	// Tags
	ListTags(ctx context.Context, actor models.Actor) ([]models.Tag, error)
	CreateTag(ctx context.Context, actor models.Actor, req models.CreateTagRequest, meta models.RequestMeta) (*models.Tag, error)
	UpdateTag(ctx context.Context, actor models.Actor, id int64, req models.UpdateTagRequest, meta models.RequestMeta) (*models.Tag, error)
	DeleteTag(ctx context.Context, actor models.Actor, id int64, meta models.RequestMeta) error

	// Audit logs
	ListAuditLogs(ctx context.Context, actor models.Actor, filter models.AuditLogFilter) ([]models.AuditLogWithUser, error)
	CreateAuditLog(ctx context.Context, actor models.Actor, req models.CreateAuditLogRequest, meta models.RequestMeta) (*models.AuditLog, error)
	UpdateAuditLog(ctx context.Context, actor models.Actor, id int64) error
	DeleteAuditLog(ctx context.Context, actor models.Actor, id int64) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	audit         *audit.Recorder
	logger        *utils.Logger
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, recorder *audit.Recorder, logger *utils.Logger, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		audit:         recorder,
		logger:        logger,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (*models.LoginData, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Internal("Error logging in", err)
	}

	// Single generic message for unknown email and wrong password alike.
	if user == nil {
		return nil, apperr.Unauthenticated("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthenticated("Invalid email or password")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, apperr.Internal("Error logging in", err)
	}

	actor := models.Actor{ID: user.ID}
	s.audit.Record(ctx, &actor, meta, audit.ActionLogin, "USER", user.ID, nil)

	return &models.LoginData{
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
		User:      user,
	}, nil
}

func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": user.ID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
