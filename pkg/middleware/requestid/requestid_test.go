package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(headerKey, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestMiddlewareHonoursClientID(t *testing.T) {
	w, seen := serve(t, "abc-123")
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(headerKey))
}

func TestMiddlewareGeneratesID(t *testing.T) {
	_, seen := serve(t, "")
	_, err := uuid.Parse(seen)
	require.NoError(t, err)

	_, seen = serve(t, strings.Repeat("x", maxLength+1))
	_, err = uuid.Parse(seen)
	require.NoError(t, err)

	_, seen = serve(t, "bad id")
	_, err = uuid.Parse(seen)
	require.NoError(t, err)
}
