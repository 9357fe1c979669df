package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dengas/devtimetracker/internal/security"
)

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*security.Claims, error)
}

const principalKey = "principal"

// AuthMiddleware verifies the Authorization header and stores the caller's
// principal on the request context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(c, http.StatusUnauthorized, "Missing bearer token", codeUnauthorized)
			c.Abort()
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := verifier.Verify(raw)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				respondError(c, http.StatusUnauthorized, "Token has expired", codeTokenExpired)
			} else {
				respondError(c, http.StatusUnauthorized, "Invalid token", codeUnauthorized)
			}
			c.Abort()
			return
		}
		c.Set(principalKey, security.NewPrincipal(claims))
		c.Next()
	}
}

func principalFrom(c *gin.Context) *security.Principal {
	if v, ok := c.Get(principalKey); ok {
		if pr, okCast := v.(*security.Principal); okCast {
			return pr
		}
	}
	return nil
}

// CORSMiddleware reflects configured browser origins and short-circuits
// preflight requests.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed[strings.TrimRight(origin, "/")]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
