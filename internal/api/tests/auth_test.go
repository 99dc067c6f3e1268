package api_test

import (
	"net/http"
	"testing"

	"github.com/financialsite/server/internal/api/testutils"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful registration
	createReq := models.CreateUserRequest{
		Name:     "New User",
		Email:    "newuser@example.com",
		Password: "password123",
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/users", createReq, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string      `json:"message"`
		Data    models.User `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "User created successfully", response.Message)
	assert.Equal(t, "newuser@example.com", response.Data.Email)
	assert.NotZero(t, response.Data.ID)

	// The password hash must never leak through the API
	assert.NotContains(t, w.Body.String(), "password")

	// Exactly one CREATE audit row for the new user
	logs := testutils.AuditLogsFor(t, testCtx.Repository, response.Data.ID, "USER", audit.ActionCreate)
	assert.Len(t, logs, 1)
	assert.Equal(t, response.Data.ID, logs[0].EntityID)

	// Test case 2: Missing fields
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/users",
		models.CreateUserRequest{Name: "No Email", Password: "password123"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Name, email and password are required", errResp.Error)

	// Test case 3: Invalid email format
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/users",
		models.CreateUserRequest{Name: "Bad Email", Email: "not-an-email", Password: "password123"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: Duplicate email conflicts
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/users", createReq, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Email already registered", errResp.Error)
}

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful login
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: "testuser@example.com", Password: "testpassword"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message string           `json:"message"`
		Data    models.LoginData `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "Login successful", response.Message)
	assert.NotEmpty(t, response.Data.Token)
	assert.Equal(t, testCtx.TestUserID, response.Data.User.ID)

	// Login leaves an audit trail entry
	logs := testutils.AuditLogsFor(t, testCtx.Repository, testCtx.TestUserID, "USER", audit.ActionLogin)
	assert.Len(t, logs, 1)

	// Test case 2: Wrong password. The message must not reveal whether
	// the email exists.
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: "testuser@example.com", Password: "wrongpassword"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Invalid email or password", errResp.Error)

	// Test case 3: Unknown email yields the identical message
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: "nosuchuser@example.com", Password: "testpassword"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Invalid email or password", errResp.Error)
}

func TestAuthenticationRequired(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// No token
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/accounts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed header
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/accounts", nil,
		map[string]string{"Authorization": "NotBearer abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/accounts", nil,
		testutils.AuthHeaders("not.a.token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	userPath := "/api/users/" + itoa(testCtx.TestUserID)

	// Test case 1: Update own name
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, userPath,
		map[string]interface{}{"name": "Renamed User"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message string      `json:"message"`
		Data    models.User `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "Renamed User", response.Data.Name)

	// Test case 2: Password change requires the current password
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, userPath,
		map[string]interface{}{"newPassword": "newpassword123"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Current password is required to set new password", errResp.Error)

	// Test case 3: Wrong current password
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, userPath,
		map[string]interface{}{"currentPassword": "wrong", "newPassword": "newpassword123"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Current password is incorrect", errResp.Error)

	// Test case 4: Successful password change lets the new password log in
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, userPath,
		map[string]interface{}{"currentPassword": "testpassword", "newPassword": "newpassword123"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: "testuser@example.com", Password: "newpassword123"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 5: Updating another user's row is forbidden
	otherID, _ := testutils.CreateTestUser(t, testCtx.Repository, "other@example.com", "Other User")
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/users/"+itoa(otherID),
		map[string]interface{}{"name": "Hijacked"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusForbidden, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "You do not have permission to modify this user", errResp.Error)
}

func TestDeleteUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Another user's row cannot be deleted
	otherID, _ := testutils.CreateTestUser(t, testCtx.Repository, "victim@example.com", "Victim")
	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/users/"+itoa(otherID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Deleting oneself succeeds
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/users/"+itoa(testCtx.TestUserID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The deleted user's token no longer resolves to an account list owner,
	// but the row itself is gone
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/users",
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
