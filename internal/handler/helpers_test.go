package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"location-tracker/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// newTestEngine returns an engine whose requests are authenticated as actor.
func newTestEngine(actor string, register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.SetClientID(c, actor)
		c.Next()
	})
	register(r)
	return r
}

func serve(t *testing.T, r http.Handler, method, target, body string) (int, interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var actualBody interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actualBody), w.Body.String())
	return w.Code, actualBody
}
