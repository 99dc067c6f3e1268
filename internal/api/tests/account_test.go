package api_test

import (
	"net/http"
	"testing"

	"github.com/financialsite/server/internal/api/testutils"
	"github.com/financialsite/server/internal/audit"
	"github.com/financialsite/server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateAccount(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Defaults apply when type, balance and color are omitted
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{Name: "Daily Expenses"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string         `json:"message"`
		Data    models.Account `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "Account created successfully", response.Message)
	assert.Equal(t, "CHECKING", response.Data.Type)
	assert.Equal(t, "0.00", response.Data.InitialBalance)
	assert.Nil(t, response.Data.Color)
	assert.Equal(t, testCtx.TestUserID, response.Data.UserID)

	// Exactly one CREATE audit row
	logs := testutils.AuditLogsFor(t, testCtx.Repository, testCtx.TestUserID, "ACCOUNT", audit.ActionCreate)
	assert.Len(t, logs, 1)
	assert.Equal(t, response.Data.ID, logs[0].EntityID)

	// Test case 2: Balance is normalized to two decimal places
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{Name: "Savings", Type: "SAVINGS", InitialBalance: "1500.5", Color: "#00FF00"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "1500.50", response.Data.InitialBalance)
	assert.NotNil(t, response.Data.Color)
	assert.Equal(t, "#00FF00", *response.Data.Color)

	// Test case 3: Name is required
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{Name: "   "},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Account name is required", errResp.Error)

	// Test case 4: Unknown account type
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{Name: "Bad", Type: "OFFSHORE"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Invalid account type", errResp.Error)

	// Test case 5: Malformed color
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{Name: "Bad", Color: "green"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 6: Non-numeric balance
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{Name: "Bad", InitialBalance: "lots"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Initial balance must be a valid number", errResp.Error)
}

func TestUpdateAccount(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	accountID := createAccount(t, testCtx, "To Update", "#112233")

	// Test case 1: Partial update changes only what was sent
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/accounts/"+itoa(accountID),
		map[string]interface{}{"name": "Updated Name"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message string         `json:"message"`
		Data    models.Account `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "Updated Name", response.Data.Name)
	assert.NotNil(t, response.Data.Color) // untouched

	// Test case 2: Explicit null clears the color
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/accounts/"+itoa(accountID),
		map[string]interface{}{"color": nil},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	testutils.DecodeResponse(t, w, &response)
	assert.Nil(t, response.Data.Color)

	// Test case 3: Unknown id
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/accounts/999999",
		map[string]interface{}{"name": "Ghost"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Account not found", errResp.Error)

	// Test case 4: Another user cannot see or update this account
	_, otherJWT := testutils.CreateTestUser(t, testCtx.Repository, "intruder@example.com", "Intruder")
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/accounts/"+itoa(accountID),
		map[string]interface{}{"name": "Stolen"},
		testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAccount(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	accountID := createAccount(t, testCtx, "To Delete", "")

	// Test case 1: Successful delete
	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/accounts/"+itoa(accountID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The delete leaves a DELETE audit row with no change payload
	logs := testutils.AuditLogsFor(t, testCtx.Repository, testCtx.TestUserID, "ACCOUNT", audit.ActionDelete)
	assert.Len(t, logs, 1)
	assert.Empty(t, logs[0].Changes)

	// Test case 2: Deleting again is a 404, and no further audit row appears
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/accounts/"+itoa(accountID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)

	logs = testutils.AuditLogsFor(t, testCtx.Repository, testCtx.TestUserID, "ACCOUNT", audit.ActionDelete)
	assert.Len(t, logs, 1)

	// Test case 3: Malformed ids fail before any lookup
	for _, path := range []string{"/api/accounts/abc", "/api/accounts/0", "/api/accounts/-3"} {
		w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, path,
			nil, testutils.AuthHeaders(testCtx.TestUserJWT))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp models.ErrorResponse
		testutils.DecodeResponse(t, w, &errResp)
		assert.Equal(t, "Invalid account ID", errResp.Error)
	}
}

func TestListAccountsIsolation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	createAccount(t, testCtx, "Mine A", "")
	createAccount(t, testCtx, "Mine B", "")

	// Another user sees an empty list, not my accounts
	_, otherJWT := testutils.CreateTestUser(t, testCtx.Repository, "second@example.com", "Second User")

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/accounts",
		nil, testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message string           `json:"message"`
		Data    []models.Account `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Empty(t, response.Data)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/accounts",
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	testutils.DecodeResponse(t, w, &response)
	assert.Len(t, response.Data, 2)
}

// createAccount makes an account via the API and returns its id.
func createAccount(t *testing.T, testCtx *testutils.TestContext, name, color string) int64 {
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{Name: name, Color: color},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string         `json:"message"`
		Data    models.Account `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	return response.Data.ID
}
