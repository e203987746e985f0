package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/pkg/models"
)

const (
	// AdminAudience is the audience every admin token must carry.
	AdminAudience = "songmatch-admin"
	// AdminSubjectKey is the gin context key holding the token subject.
	AdminSubjectKey = "admin_subject"
)

// ErrAdminDisabled is returned when no signing secret is configured.
var ErrAdminDisabled = errors.New("admin tokens are disabled: security.jwt_secret is not set")

// NewAdminToken signs an HS256 admin token for subject valid for ttl.
func NewAdminToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrAdminDisabled
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{AdminAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// parseAdminToken verifies signature, algorithm, audience and expiry.
func parseAdminToken(secret, tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(AdminAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AdminAuth requires a bearer admin token signed with secret. With an empty
// secret every request is refused.
func AdminAuth(secret string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.NewErrorResponse(
				"ADMIN_DISABLED", "Admin endpoints are disabled on this server", ""))
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewErrorResponse(
				"MISSING_AUTHORIZATION", "Authorization header is required", ""))
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewErrorResponse(
				"INVALID_AUTHORIZATION_FORMAT", "Authorization header must be in format 'Bearer <token>'", ""))
			return
		}

		claims, err := parseAdminToken(secret, tokenParts[1])
		if err != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Warn("Invalid admin token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewErrorResponse(
				"INVALID_TOKEN", "Invalid or expired token", ""))
			return
		}

		c.Set(AdminSubjectKey, claims.Subject)
		c.Next()
	}
}
