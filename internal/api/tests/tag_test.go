package api_test

import (
	"net/http"
	"testing"

	"github.com/financialsite/server/internal/api/testutils"
	"github.com/financialsite/server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateTag(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful create
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/tags",
		models.CreateTagRequest{Name: "recurring", Color: "#FFAA00"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string     `json:"message"`
		Data    models.Tag `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "recurring", response.Data.Name)

	// Test case 2: Duplicate name for the same user
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/tags",
		models.CreateTagRequest{Name: "recurring"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Tag with this name already exists", errResp.Error)

	// Test case 3: A different user may reuse the name
	_, otherJWT := testutils.CreateTestUser(t, testCtx.Repository, "other@example.com", "Other")
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/tags",
		models.CreateTagRequest{Name: "recurring"},
		testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	// Test case 4: Name is required
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/tags",
		models.CreateTagRequest{Color: "#FFAA00"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Tag name is required", errResp.Error)
}

func TestUpdateTag(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	createTag := func(name string) int64 {
		w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/tags",
			models.CreateTagRequest{Name: name},
			testutils.AuthHeaders(testCtx.TestUserJWT))
		assert.Equal(t, http.StatusCreated, w.Code)

		var response struct {
			Data models.Tag `json:"data"`
		}
		testutils.DecodeResponse(t, w, &response)
		return response.Data.ID
	}

	firstID := createTag("work")
	createTag("personal")

	// Test case 1: Renaming to itself is allowed
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/tags/"+itoa(firstID),
		map[string]interface{}{"name": "work"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 2: Renaming onto another tag's name is rejected
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/tags/"+itoa(firstID),
		map[string]interface{}{"name": "personal"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Tag with this name already exists", errResp.Error)

	// Test case 3: Color can be set and cleared
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/tags/"+itoa(firstID),
		map[string]interface{}{"color": "#123456"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data models.Tag `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.NotNil(t, response.Data.Color)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/tags/"+itoa(firstID),
		map[string]interface{}{"color": nil},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	testutils.DecodeResponse(t, w, &response)
	assert.Nil(t, response.Data.Color)
}

func TestDeleteTag(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/tags",
		models.CreateTagRequest{Name: "temp"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Tag `json:"data"`
	}
	testutils.DecodeResponse(t, w, &created)

	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/tags/"+itoa(created.Data.ID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The name becomes available again
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/tags",
		models.CreateTagRequest{Name: "temp"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)
}
