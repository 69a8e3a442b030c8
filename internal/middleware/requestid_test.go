package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newIDTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		rid, _ := c.Get(ContextKeyRequestID)
		c.String(200, "%v", rid)
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newIDTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	rid := w.Header().Get(HeaderRequestID)
	assert.Len(t, rid, 32, "hex-encoded 16 bytes")
	assert.Equal(t, rid, w.Body.String(), "context and header must agree")
}

func TestRequestIDPropagated(t *testing.T) {
	r := newIDTestRouter()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderRequestID, "worker-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "worker-42", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "worker-42", w.Body.String())
}

func TestRequestIDOversizedInboundReplaced(t *testing.T) {
	r := newIDTestRouter()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", maxInboundIDLen+1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	rid := w.Header().Get(HeaderRequestID)
	assert.Len(t, rid, 32)
	assert.NotContains(t, rid, "x")
}

func TestRequestIDsAreUnique(t *testing.T) {
	r := newIDTestRouter()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		seen[w.Header().Get(HeaderRequestID)] = true
	}
	assert.Len(t, seen, 10)
}
