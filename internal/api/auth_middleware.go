package api

import (
	"context"
	"strings"
	"time"

	"travelog/internal/apperr"
	"travelog/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	currentUsernameContextKey = "current-username"
)

// Authenticate JWT 认证中间件。它只负责解析凭证：没有或无效的令牌不会
// 中断请求，请求继续以匿名身份执行，由 RequireAuth 决定是否放行。
func (h *HTTPHandler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.Next()
			return
		}

		username, err := h.authManager.ParseToken(tokenString)
		if err != nil {
			logrus.WithError(err).Debug("rejected bearer token")
			c.Next()
			return
		}

		c.Set(currentUsernameContextKey, username)
		c.Next()
	}
}

// RequireAuth 拒绝未携带有效令牌的请求
func (h *HTTPHandler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUsername(c) == "" {
			Fail(c, apperr.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUsername 从上下文获取当前认证用户名，匿名请求返回空串
func CurrentUsername(c *gin.Context) string {
	value, exists := c.Get(currentUsernameContextKey)
	if !exists {
		return ""
	}
	username, ok := value.(string)
	if !ok {
		return ""
	}
	return username
}

// currentUser resolves the authenticated account. The token only carries the
// username, so the user row is loaded per request.
func (h *HTTPHandler) currentUser(c *gin.Context) (*entity.DbUser, error) {
	username := CurrentUsername(c)
	if username == "" {
		return nil, apperr.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	return h.userService.GetByUsername(ctx, username)
}
