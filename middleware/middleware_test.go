package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fupa/constants"
	apperrors "fupa/errors"
	"fupa/services"

	"github.com/gin-gonic/gin"
)

var secret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, uid, role string) string {
	t.Helper()
	tok, err := services.GenerateToken(secret, services.UserInfo{UserID: uid, Role: role}, 5)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID)+"/"+c.GetString(ContextUserRole))
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", "Bearer "+auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret))

	if w := do(r, "/x", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}
	if w := do(r, "/x", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}
	w := do(r, "/x", token(t, "u1", constants.RoleEmployee))
	if w.Code != http.StatusOK || w.Body.String() != "u1/karyawan" {
		t.Fatalf("expected u1/karyawan, got %d %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	r := newRouter(AuthMiddleware(secret))
	w := do(r, "/x?token="+token(t, "u2", constants.RoleAdmin), "")
	if w.Code != http.StatusOK || w.Body.String() != "u2/admin" {
		t.Fatalf("expected u2/admin, got %d %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	other, err := services.GenerateToken([]byte("other"), services.UserInfo{UserID: "u1", Role: "admin"}, 5)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := do(newRouter(AuthMiddleware(secret)), "/x", other); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminRole(t *testing.T) {
	r := newRouter(AuthMiddleware(secret, constants.RoleAdmin))
	if w := do(r, "/x", token(t, "u1", constants.RoleEmployee)); w.Code != http.StatusForbidden {
		t.Fatalf("employee on admin route: expected 403, got %d", w.Code)
	}
	if w := do(r, "/x", token(t, "a1", constants.RoleAdmin)); w.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", w.Code)
	}
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret), RoleMiddleware(constants.RoleAdmin))
	if w := do(r, "/x", token(t, "u1", constants.RoleEmployee)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if w := do(newRouter(RoleMiddleware(constants.RoleAdmin)), "/x", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no auth context: expected 401, got %d", w.Code)
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperrors.NewAppError(apperrors.ErrCodeRecordNotFound, "nope", nil))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(http.ErrHandlerTimeout)
	})

	if w := do(r, "/missing", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := do(r, "/boom", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestSessionMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("sessionId")) })

	w := do(r, "/x", "")
	if w.Header().Get("X-Session-ID") == "" || w.Body.String() != w.Header().Get("X-Session-ID") {
		t.Fatalf("expected a generated session id, got %q", w.Header().Get("X-Session-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Session-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc" {
		t.Fatalf("expected session id to be kept, got %s", w.Body.String())
	}
}
