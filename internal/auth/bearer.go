// Package auth resolves the authenticated client of a request. Tokens are issued elsewhere; this
// package only verifies them.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// clientCtxKey is the Gin context key used to store the authenticated client ID.
const clientCtxKey = "client_id"

// BearerMiddleware verifies an HS256 access token from the Authorization header and stores its
// subject as the authenticated client.
func BearerMiddleware(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		var claims jwt.RegisteredClaims
		if _, err := parser.ParseWithClaims(strings.TrimSpace(raw), &claims, keyFunc); err != nil {
			log.Debug().Err(err).Msg("rejected access token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(clientCtxKey, claims.Subject)
		c.Next()
	}
}

// ClientID returns the authenticated client ID from the request context.
func ClientID(c *gin.Context) string {
	return c.GetString(clientCtxKey)
}

// SetClientID stores an authenticated client ID. Used by tests and trusted internal callers.
func SetClientID(c *gin.Context, clientID string) {
	c.Set(clientCtxKey, clientID)
}
