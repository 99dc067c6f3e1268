package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/financialsite/server/internal/api"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/financialsite/server/internal/repository"
	"github.com/financialsite/server/internal/service"
	"github.com/financialsite/server/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key"

// TestContext holds all dependencies for tests
type TestContext struct {
	Router      *gin.Engine
	Repository  repository.Repository
	Service     service.Service
	JWTSecret   []byte
	TestUserID  int64
	TestUserJWT string
}

// SetupTestContext creates a new test context backed by an in-memory
// repository, so every test starts from an empty, isolated store.
func SetupTestContext(t *testing.T) *TestContext {
	repo := repository.NewMemoryRepository()
	logger := utils.NewLogger()
	recorder := audit.NewRecorder(repo, logger)
	svc := service.NewDefaultService(repo, recorder, logger, testJWTSecret)
	handler := api.NewHandler(svc, logger)

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(testJWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	testUserID, token := CreateTestUser(t, repo, "testuser@example.com", "Test User")

	return &TestContext{
		Router:      router,
		Repository:  repo,
		Service:     svc,
		JWTSecret:   []byte(testJWTSecret),
		TestUserID:  testUserID,
		TestUserJWT: token,
	}
}

// CreateTestUser inserts a user directly through the repository and returns
// its id together with a signed token for that user.
func CreateTestUser(t *testing.T, repo repository.Repository, email, name string) (int64, string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
	}

	err := repo.CreateUser(context.Background(), user)
	assert.NoError(t, err, "Failed to create test user")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err, "Failed to generate JWT token")

	return user.ID, tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// DecodeResponse unmarshals a JSON response body into out.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	err := json.Unmarshal(w.Body.Bytes(), out)
	assert.NoError(t, err, "Failed to decode response body: %s", w.Body.String())
}

// AuditLogsFor lists the audit rows recorded for a user's entity/action pair.
func AuditLogsFor(t *testing.T, repo repository.Repository, userID int64, entity, action string) []models.AuditLogWithUser {
	logs, err := repo.ListAuditLogs(context.Background(), userID, models.AuditLogFilter{Entity: entity, Action: action})
	assert.NoError(t, err)
	return logs
}
