package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tewodrosm/sera-api/internal/authz"
	"github.com/tewodrosm/sera-api/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  uint(7),
		"username": "tester",
		"role":     models.RoleHRManager,
		"exp":      time.Now().Add(expiresIn).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Auth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
			"role":     GetUserRole(c),
		})
	})
	return router
}

func TestAuth_MissingHeader(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, -time.Hour))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", time.Hour))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Hour))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"tester"`)
	assert.Contains(t, w.Body.String(), `"role":"hr_manager"`)
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", func(c *gin.Context) { c.Set("user_role", models.RoleHRManager) }, RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/admin-ok", func(c *gin.Context) { c.Set("user_role", models.RoleAdmin) }, RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// Asset deletes are admin-only even though asset managers may otherwise
// mutate assets, so the delete route stacks RequireAdmin on RequireMutate.
func TestRequireMutate_DeleteStacksRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	setRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set("user_role", role) }
	}
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	group := router.Group("", setRole(models.RoleAssetManager), RequireMutate(authz.ResourceAssets))
	group.PUT("/assets/:id", ok)
	group.DELETE("/assets/:id", RequireAdmin(), ok)

	adminGroup := router.Group("/admin", setRole(models.RoleAdmin), RequireMutate(authz.ResourceAssets))
	adminGroup.DELETE("/assets/:id", RequireAdmin(), ok)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/assets/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/assets/1", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/assets/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireMutate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	setRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set("user_role", role) }
	}
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	router.POST("/hr", setRole(models.RoleHRManager), RequireMutate(authz.ResourceEmployees), ok)
	router.POST("/hr-denied", setRole(models.RoleAccountant), RequireMutate(authz.ResourceEmployees), ok)
	router.POST("/payments", setRole(models.RoleAccountant), RequireMutate(authz.ResourcePayments), ok)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hr", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hr-denied", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
