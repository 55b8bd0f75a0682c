package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"study-planner/internal/model"
	"study-planner/pkg/log"
	"study-planner/pkg/response"
)

const (
	// UserIDHeader carries the caller identity set by the upstream gateway.
	UserIDHeader = "X-User-ID"

	scopeKey       = "planner.scope"
	maxUserIDBytes = 128
)

// Auth requires the X-User-ID header and stores the caller scope on the
// gin context and the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" || len(userID) > maxUserIDBytes {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc := model.Scope{UserID: userID}
		c.Set(scopeKey, sc)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), log.UserIDKey{}, userID))
		c.Next()
	}
}

// GetScope returns the scope stored by Auth, or a zero scope.
func GetScope(c *gin.Context) model.Scope {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}
	}
	sc, _ := v.(model.Scope)
	return sc
}

// SetScope stores sc on the gin context.
func SetScope(c *gin.Context, sc model.Scope) {
	c.Set(scopeKey, sc)
}
