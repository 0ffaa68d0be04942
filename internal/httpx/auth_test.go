package httpx

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/coursekart/coursekart-api/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}

func verifyStub(token string) (*auth.Claims, error) {
	switch token {
	case "admin-token":
		return &auth.Claims{UserID: "u-admin", Role: auth.RoleAdmin}, nil
	case "student-token":
		return &auth.Claims{UserID: "u-student", Role: auth.RoleStudent}, nil
	}
	return nil, auth.ErrInvalidToken
}

func protectedRouter(stages ...Stage) *gin.Engine {
	r := gin.New()
	r.GET("/secret", Auth(stages...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("uid")})
	})
	return r
}

func TestAuth_MissingHeaderIs401(t *testing.T) {
	t.Parallel()

	r := protectedRouter(Bearer(verifyStub))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", w.Code)
	}
}

func TestAuth_MalformedAndInvalidTokensAre401(t *testing.T) {
	t.Parallel()

	r := protectedRouter(Bearer(verifyStub))
	for _, header := range []string{"admin-token", "Basic abc", "Bearer bogus"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status=%d, want 401", header, w.Code)
		}
	}
}

func TestAuth_RoleGate(t *testing.T) {
	t.Parallel()

	r := protectedRouter(Bearer(verifyStub), RequireRoles(auth.RoleAdmin))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("student on admin route: status=%d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin on admin route: status=%d, want 200", w.Code)
	}
}

func TestAuth_ClaimsLandInContext(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/me", Auth(Bearer(verifyStub)), func(c *gin.Context) {
		claims := c.MustGet("claims").(*auth.Claims)
		c.JSON(http.StatusOK, gin.H{"uid": claims.UserID, "role": claims.Role})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "u-student") || !strings.Contains(body, auth.RoleStudent) {
		t.Fatalf("claims missing from response: %s", body)
	}
}
