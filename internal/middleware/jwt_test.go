package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
	"github.com/kahu-edu/badge-portfolio-api/internal/service"
)

const testSecret = "middleware-test-secret"

func testAuthService() *service.AuthService {
	return service.NewAuthService(nil, nil, nil, service.AuthConfig{
		TokenSecret: testSecret,
		TokenExpiry: time.Hour,
		Issuer:      "badge-portfolio",
	})
}

func signToken(t *testing.T, userID string, role models.UserRole) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID:   userID,
		Username: "aroha",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, fn gin.HandlerFunc, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	fn(c)
	return c, w
}

func TestJWTRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := runMiddleware(t, JWT(testAuthService()), "")
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTSetsClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token := signToken(t, "u1", models.RoleStudent)
	c, _ := runMiddleware(t, JWT(testAuthService()), "Bearer "+token)
	require.False(t, c.IsAborted())

	value, ok := c.Get(ContextUserKey)
	require.True(t, ok)
	require.Equal(t, "u1", value.(*models.JWTClaims).UserID)
}

func TestOptionalJWTAnonymousPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := runMiddleware(t, OptionalJWT(testAuthService()), "")
	require.False(t, c.IsAborted())
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := c.Get(ContextUserKey)
	require.False(t, ok)
}

func TestOptionalJWTInvalidTokenPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := runMiddleware(t, OptionalJWT(testAuthService()), "Bearer not.a.token")
	require.False(t, c.IsAborted())

	_, ok := c.Get(ContextUserKey)
	require.False(t, ok)
}

func TestOptionalJWTAttachesIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token := signToken(t, "u2", models.RoleTeacher)
	c, _ := runMiddleware(t, OptionalJWT(testAuthService()), "Bearer "+token)
	require.False(t, c.IsAborted())

	value, ok := c.Get(ContextUserKey)
	require.True(t, ok)
	require.Equal(t, models.RoleTeacher, value.(*models.JWTClaims).Role)
}
