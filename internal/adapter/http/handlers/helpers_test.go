package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chefe_local/internal/adapter/http/middleware"
	"chefe_local/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	clientSession = entities.Session{UserID: "client-1"}
	cookSession   = entities.Session{UserID: "cook-1"}
	adminSession  = entities.Session{UserID: "ops-1", Admin: true}
)

// newRouter returns a gin engine whose requests carry s, standing in for the
// auth middleware.
func newRouter(s entities.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.WithSession(c, s)
		c.Next()
	})
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func expectCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d body=%s", status, w.Code, w.Body.String())
	}
	if code == "" {
		return
	}
	if got := decodeBody(t, w)["code"]; got != code {
		t.Fatalf("expected code %s, got %v", code, got)
	}
}
