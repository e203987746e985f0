package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAdminRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	router := gin.New()
	admin := router.Group("/admin", AdminAuth(secret, logger))
	admin.POST("/reload", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(AdminSubjectKey))
	})
	return router
}

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAdminAuth(t *testing.T) {
	valid, err := NewAdminToken(testSecret, "ops", time.Minute)
	require.NoError(t, err)

	forged, err := NewAdminToken("ffffffffffffffffffffffffffffffff", "ops", time.Minute)
	require.NoError(t, err)

	expired := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "ops",
		Audience:  jwt.ClaimStrings{AdminAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	noExpiry := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:  "ops",
		Audience: jwt.ClaimStrings{AdminAudience},
	})
	wrongAudience := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "ops",
		Audience:  jwt.ClaimStrings{"someone-else"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	unsigned := signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{
		Subject:   "ops",
		Audience:  jwt.ClaimStrings{AdminAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "ops"},
		{"missing header", "", http.StatusUnauthorized, "MISSING_AUTHORIZATION"},
		{"not bearer", "Basic " + valid, http.StatusUnauthorized, "INVALID_AUTHORIZATION_FORMAT"},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"no expiry", "Bearer " + noExpiry, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"wrong audience", "Bearer " + wrongAudience, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"alg none", "Bearer " + unsigned, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	router := newAdminRouter(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAdminAuth_DisabledWithoutSecret(t *testing.T) {
	token, err := NewAdminToken(testSecret, "ops", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newAdminRouter("").ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ADMIN_DISABLED")
}

func TestNewAdminToken(t *testing.T) {
	_, err := NewAdminToken("", "ops", time.Minute)
	assert.ErrorIs(t, err, ErrAdminDisabled)

	_, err = NewAdminToken(testSecret, "ops", 0)
	assert.Error(t, err)

	token, err := NewAdminToken(testSecret, "ops", time.Hour)
	require.NoError(t, err)
	claims, err := parseAdminToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}
