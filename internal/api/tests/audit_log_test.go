package api_test

import (
	"net/http"
	"testing"

	"github.com/financialsite/server/internal/api/testutils"
	"github.com/financialsite/server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestListAuditLogs(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	accountID := createAccount(t, testCtx, "Audited", "")
	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/accounts/"+itoa(accountID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNoContent, w.Code)

	list := func(jwt, query string) []models.AuditLogWithUser {
		w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/audit-logs"+query,
			nil, testutils.AuthHeaders(jwt))
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data []models.AuditLogWithUser `json:"data"`
		}
		testutils.DecodeResponse(t, w, &response)
		return response.Data
	}

	// Test case 1: Both mutations show up, newest first, with the acting
	// user's name joined in
	logs := list(testCtx.TestUserJWT, "?entity=ACCOUNT")
	assert.Len(t, logs, 2)
	assert.Equal(t, "DELETE", logs[0].Action)
	assert.Equal(t, "CREATE", logs[1].Action)
	assert.NotNil(t, logs[0].UserName)
	assert.Equal(t, "Test User", *logs[0].UserName)

	// Test case 2: Action filter
	logs = list(testCtx.TestUserJWT, "?entity=ACCOUNT&action=DELETE")
	assert.Len(t, logs, 1)

	// Test case 3: The trail is scoped to the requesting user
	_, otherJWT := testutils.CreateTestUser(t, testCtx.Repository, "other@example.com", "Other")
	assert.Empty(t, list(otherJWT, "?entity=ACCOUNT"))
}

func TestCreateAuditLog(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	entityID := int64(42)

	// Test case 1: Manual entry
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/audit-logs",
		models.CreateAuditLogRequest{Action: "UPDATE", Entity: "EXTERNAL", EntityID: &entityID},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data models.AuditLog `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "EXTERNAL", response.Data.Entity)
	assert.NotNil(t, response.Data.UserID)
	assert.Equal(t, testCtx.TestUserID, *response.Data.UserID)

	// Test case 2: Unknown action
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/audit-logs",
		models.CreateAuditLogRequest{Action: "PURGE", Entity: "EXTERNAL", EntityID: &entityID},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Action must be CREATE, UPDATE, DELETE, or LOGIN", errResp.Error)

	// Test case 3: Missing entity id
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/audit-logs",
		models.CreateAuditLogRequest{Action: "UPDATE", Entity: "EXTERNAL"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Entity ID is required", errResp.Error)
}

func TestAuditLogsAreImmutable(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Updates and deletes are refused for every identifier, valid or not
	for _, id := range []string{"1", "999999", "abc"} {
		w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/audit-logs/"+id,
			map[string]interface{}{"action": "DELETE"},
			testutils.AuthHeaders(testCtx.TestUserJWT))
		assert.Equal(t, http.StatusForbidden, w.Code)

		var errResp models.ErrorResponse
		testutils.DecodeResponse(t, w, &errResp)
		assert.Equal(t, "Audit logs cannot be updated", errResp.Error)

		w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/audit-logs/"+id,
			nil, testutils.AuthHeaders(testCtx.TestUserJWT))
		assert.Equal(t, http.StatusForbidden, w.Code)
		testutils.DecodeResponse(t, w, &errResp)
		assert.Equal(t, "Audit logs cannot be deleted", errResp.Error)
	}
}
