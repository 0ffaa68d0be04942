package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coursekart/coursekart-api/internal/auth"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Stage is one step of the auth pipeline. Stages run in order and fill the
// shared claims; the first error short-circuits the request.
type Stage func(r *http.Request, claims *auth.Claims) error

// Bearer verifies the Authorization header and fills the claims.
func Bearer(verify func(string) (*auth.Claims, error)) Stage {
	return func(r *http.Request, claims *auth.Claims) error {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			return ErrUnauthenticated
		}
		parsed, err := verify(token)
		if err != nil {
			return ErrUnauthenticated
		}
		*claims = *parsed
		return nil
	}
}

// RequireRoles allows only the listed roles through.
func RequireRoles(roles ...string) Stage {
	return func(r *http.Request, claims *auth.Claims) error {
		for _, role := range roles {
			if claims.Role == role {
				return nil
			}
		}
		return ErrForbidden
	}
}

// Auth composes stages into gin middleware. 401 for a failed identity stage,
// 403 for a failed role stage; on success the claims land in the context
// under "claims" and the user id under "uid".
func Auth(stages ...Stage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var claims auth.Claims
		for _, stage := range stages {
			if err := stage(c.Request, &claims); err != nil {
				status := http.StatusUnauthorized
				if errors.Is(err, ErrForbidden) {
					status = http.StatusForbidden
				}
				c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
				return
			}
		}
		c.Set("claims", &claims)
		c.Set("uid", claims.UserID)
		c.Next()
	}
}
