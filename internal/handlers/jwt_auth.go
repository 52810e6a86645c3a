package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/auth"
	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

const (
	contextUserIDKey   = "user_id"
	contextUserRoleKey = "user_role"
)

// JWTAuthMiddleware is the auth gate: it resolves a bearer token to a
// (user_id, role) pair and rejects everything else with 401.
type JWTAuthMiddleware struct {
	tokens *auth.TokenManager
	users  repositories.UserRepository
	logger utils.Logger
}

func NewJWTAuthMiddleware(tokens *auth.TokenManager, users repositories.UserRepository, logger utils.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Authenticate verifies the bearer token and loads the current user.
// The role comes from the user record, not the token, so role changes
// take effect without waiting for token expiry.
func (m *JWTAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			abortUnauthorized(c, "Invalid authorization header")
			return
		}

		claims, err := m.tokens.Parse(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				abortUnauthorized(c, "Invalid or expired token")
				return
			}
			m.logger.Error("failed to resolve token user", "error", err, "user_id", claims.UserID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
				Code: http.StatusInternalServerError,
				Msg:  "Internal server error",
			})
			return
		}

		c.Set(contextUserIDKey, user.ID)
		c.Set(contextUserRoleKey, user.Role)
		c.Next()
	}
}

// RequireRole allows only the listed roles through. The policy table is
// exact: there is no implicit admin override.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, Response{
			Code: http.StatusForbidden,
			Msg:  "Access denied",
		})
	}
}

// CurrentActor reads the authenticated caller from the gin context.
// Only valid after Authenticate has run.
func CurrentActor(c *gin.Context) services.Actor {
	actor := services.Actor{}
	if id, ok := c.Get(contextUserIDKey); ok {
		if userID, ok := id.(uint); ok {
			actor.ID = userID
		}
	}
	if r, ok := c.Get(contextUserRoleKey); ok {
		if role, ok := r.(models.UserRole); ok {
			actor.Role = role
		}
	}
	return actor
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
		Code: http.StatusUnauthorized,
		Msg:  msg,
	})
}
