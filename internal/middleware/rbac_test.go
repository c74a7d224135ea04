package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

func rbacContext(t *testing.T, claims *models.JWTClaims, paramID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if claims != nil {
		c.Set(ContextUserKey, claims)
	}
	if paramID != "" {
		c.Params = gin.Params{{Key: "id", Value: paramID}}
	}
	return c, w
}

func TestRBACWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := rbacContext(t, nil, "")
	RequireRoles(models.RoleTeacher)(c)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRBACAllowsListedRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := rbacContext(t, &models.JWTClaims{UserID: "u1", Role: models.RoleTeacher}, "")
	RequireRoles(models.RoleTeacher, models.RoleAdmin)(c)
	require.False(t, c.IsAborted())
}

func TestRBACForbidsOtherRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := rbacContext(t, &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}, "")
	RequireRoles(models.RoleTeacher)(c)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRBACSelfMatchesRouteParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := rbacContext(t, &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}, "u1")
	RBAC("SELF", string(models.RoleTeacher))(c)
	require.False(t, c.IsAborted())

	c, w := rbacContext(t, &models.JWTClaims{UserID: "u2", Role: models.RoleStudent}, "u1")
	RBAC("SELF", string(models.RoleTeacher))(c)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusForbidden, w.Code)
}
