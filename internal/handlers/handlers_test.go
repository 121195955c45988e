package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tewodrosm/sera-api/internal/services"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrDuplicate, http.StatusConflict},
		{services.ErrInsufficientStock, http.StatusConflict},
		{services.ErrInvalidState, http.StatusConflict},
		{services.ErrSelfDelete, http.StatusForbidden},
		{services.ErrValidation, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrAccountInactive, http.StatusUnauthorized},
		{services.ErrInvalidPassword, http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		c, w := testContext("/")
		respondError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestParseListQuery(t *testing.T) {
	c, _ := testContext("/employees?page=3&per_page=50&search=abebe&sort_by=full_name&sort_dir=desc&department=Security&ignored=x")

	query := parseListQuery(c, "department", "status")

	assert.Equal(t, 3, query.Page)
	assert.Equal(t, 50, query.PerPage)
	assert.Equal(t, "abebe", query.Search)
	assert.Equal(t, "full_name", query.SortBy)
	assert.Equal(t, "desc", query.SortDir)
	assert.Equal(t, "Security", query.Filters["department"])
	assert.Empty(t, query.Filters["status"])
	assert.Empty(t, query.Filters["ignored"])
}

func TestParseListQuery_Defaults(t *testing.T) {
	c, _ := testContext("/employees")

	query := parseListQuery(c)
	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.PerPage)
}

func TestParseListQuery_CapsPerPage(t *testing.T) {
	c, _ := testContext("/employees?per_page=5000&page=-2")

	query := parseListQuery(c)
	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.PerPage)
}

// An adjustment that sets stock to zero must survive request binding;
// only the service rejects bad quantities.
func TestTransactionInputBinding_ZeroQuantityAdjustment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"transaction_type":"adjustment","quantity":0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var input services.TransactionInput
	require.NoError(t, c.ShouldBindJSON(&input))
	assert.Equal(t, "adjustment", input.TransactionType)
	assert.Zero(t, input.Quantity)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":5}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var missingType services.TransactionInput
	assert.Error(t, c.ShouldBindJSON(&missingType))
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := parseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestParseID_Invalid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, raw := range []string{"0", "-5", "abc", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := parseID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
	}
}
