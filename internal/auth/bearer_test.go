package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestBearerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	valid := jwt.RegisteredClaims{
		Subject:   "client-a",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := jwt.RegisteredClaims{
		Subject:   "client-a",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	noExpiry := jwt.RegisteredClaims{Subject: "client-a"}
	noSubject := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedClient string
	}{
		{
			name:           "valid token",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, secret, valid),
			expectedStatus: http.StatusOK,
			expectedClient: "client-a",
		},
		{
			name:           "missing header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong secret",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), valid),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong algorithm",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS512, secret, valid),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, secret, expired),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no expiry",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, secret, noExpiry),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no subject",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, secret, noSubject),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			var seen string
			r.GET("/whoami", BearerMiddleware(secret), func(c *gin.Context) {
				seen = ClientID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedClient, seen)
		})
	}
}
