package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/http/middleware"
)

var testCookies = CookieConfig{MaxAge: 240 * time.Hour}

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

// withIdentity stands in for the session gate
func withIdentity(identity *domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity != nil {
			c.Set(middleware.IdentityKey, identity)
		}
		c.Next()
	}
}

func newTestRouter(identity *domain.Identity) *gin.Engine {
	r := gin.New()
	r.Use(withIdentity(identity))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func nopLogger() *zap.Logger { return zap.NewNop() }
