package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, secret, userID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware_PropagatesUserToRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	var gotUserID, gotRole string

	// Urutan seperti di aplikasi: logger dipasang global, auth per group.
	// Identitas user tetap harus sampai ke request context.
	r := gin.New()
	r.Use(ContextLogger(zap.NewNop()))
	grp := r.Group("/upload")
	grp.Use(AuthMiddleware())
	grp.POST("", func(c *gin.Context) {
		gotUserID = contextutil.GetUserID(c.Request.Context())
		gotRole = c.GetString("role")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "test-secret", "user-7", "hr_admin"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "user-7", gotUserID)
	assert.Equal(t, "hr_admin", gotRole)
}

func TestAuthMiddleware_AcceptsCookieToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	var gotUserID string
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		gotUserID = contextutil.GetUserID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, "test-secret", "user-3", "hr_staff")})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-3", gotUserID)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		t.Fatal("handler should not run without a token")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token not found")
}
