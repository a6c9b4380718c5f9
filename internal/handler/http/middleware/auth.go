package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo/user-service/internal/domain/entity"
	"github.com/dcastillo/user-service/internal/handler/http/dto"
	"github.com/dcastillo/user-service/internal/usecase"
)

// ClaimsContextKey is the gin context key under which verified claims are stored.
const ClaimsContextKey = "claims"

// AuthMiddleWare verifies the bearer token and stores the claims in the
// request context for downstream handlers.
func AuthMiddleWare(jwtService usecase.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "Authorization header must be a bearer token")
			return
		}

		claims, err := jwtService.VerifyToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// RequireRole is the single authorization predicate guarding admin-only
// flows. It must run after AuthMiddleWare.
func RequireRole(role entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			abortUnauthorized(c, "User not authenticated")
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Envelope{
				Status:   false,
				Response: gin.H{},
				Msg:      "Error at privileges, the user " + claims.Name + " cannot perform this operation",
			})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext retrieves the verified claims set by AuthMiddleWare.
func ClaimsFromContext(c *gin.Context) (*entity.Claims, bool) {
	v, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*entity.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Envelope{
		Status:   false,
		Response: gin.H{},
		Msg:      msg,
	})
}
