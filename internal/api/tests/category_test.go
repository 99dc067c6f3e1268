package api_test

import (
	"net/http"
	"testing"

	"github.com/financialsite/server/internal/api/testutils"
	"github.com/financialsite/server/internal/models"
	"github.com/stretchr/testify/assert"
)

func createCategory(t *testing.T, testCtx *testutils.TestContext, name, catType string, parentID *int64) int64 {
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: name, Type: catType, ParentID: parentID},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data models.Category `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	return response.Data.ID
}

func TestCreateCategory(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Top-level category
	parentID := createCategory(t, testCtx, "Food", "EXPENSE", nil)
	assert.NotZero(t, parentID)

	// Test case 2: Subcategory of the same type
	childID := createCategory(t, testCtx, "Restaurants", "EXPENSE", &parentID)
	assert.NotZero(t, childID)

	// Test case 3: Subcategory type must match the parent
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: "Refunds", Type: "INCOME", ParentID: &parentID},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Parent category must have the same type", errResp.Error)

	// Test case 4: Unknown parent
	ghost := int64(999999)
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: "Orphan", Type: "EXPENSE", ParentID: &ghost},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Parent category not found", errResp.Error)

	// Test case 5: Another user's category cannot be used as a parent
	_, otherJWT := testutils.CreateTestUser(t, testCtx.Repository, "other@example.com", "Other")
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: "Sneaky", Type: "EXPENSE", ParentID: &parentID},
		testutils.AuthHeaders(otherJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Parent category not found", errResp.Error)

	// Test case 6: Type is restricted
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/categories",
		models.CreateCategoryRequest{Name: "Weird", Type: "TRANSFER"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Category type must be INCOME or EXPENSE", errResp.Error)
}

func TestUpdateCategory(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	parentID := createCategory(t, testCtx, "Food", "EXPENSE", nil)
	createCategory(t, testCtx, "Groceries", "EXPENSE", &parentID)

	// Test case 1: Renaming works
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/categories/"+itoa(parentID),
		map[string]interface{}{"name": "Food & Drink"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data models.Category `json:"data"`
	}
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "Food & Drink", response.Data.Name)

	// Test case 2: Type cannot change while children exist
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/categories/"+itoa(parentID),
		map[string]interface{}{"type": "INCOME"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Cannot change category type when it has child categories", errResp.Error)

	// Test case 3: A childless category may change type
	loneID := createCategory(t, testCtx, "Misc", "EXPENSE", nil)
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/categories/"+itoa(loneID),
		map[string]interface{}{"type": "INCOME"},
		testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	testutils.DecodeResponse(t, w, &response)
	assert.Equal(t, "INCOME", response.Data.Type)
}

func TestDeleteCategory(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	parentID := createCategory(t, testCtx, "Food", "EXPENSE", nil)
	childID := createCategory(t, testCtx, "Groceries", "EXPENSE", &parentID)

	// Test case 1: A parent with children cannot be deleted
	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/categories/"+itoa(parentID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Cannot delete category with child categories", errResp.Error)

	// Test case 2: Children first, then the parent
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/categories/"+itoa(childID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/categories/"+itoa(parentID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Test case 3: Deleting a missing category
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/categories/"+itoa(parentID),
		nil, testutils.AuthHeaders(testCtx.TestUserJWT))
	assert.Equal(t, http.StatusNotFound, w.Code)
	testutils.DecodeResponse(t, w, &errResp)
	assert.Equal(t, "Category not found", errResp.Error)
}
