package api

import (
	"context"
	"net/http"
	"time"

	"travelog/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Signup 注册新用户。令牌需要再走一次登录获取。
func (h *HTTPHandler) Signup(c *gin.Context) {
	var req entity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.Signup(ctx, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	OK(c, http.StatusCreated, "signup successful", entity.MakeUserSummary(user))
}

// Login 用户名或邮箱加密码登录
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.Authenticate(ctx, req.UsernameOrEmail, req.Password)
	if err != nil {
		logrus.WithField("identifier", req.UsernameOrEmail).Warn("login attempt failed")
		HandleError(c, err)
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user.Username)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		HandleError(c, err)
		return
	}

	OK(c, http.StatusOK, "login successful", entity.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      entity.MakeUserSummary(user),
	})
}

// CheckUsername 注册前检查用户名。data 为 true 表示已被占用。
func (h *HTTPHandler) CheckUsername(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := h.userService.UsernameExists(ctx, c.Query("username"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", exists)
}

// CheckEmail 注册前检查邮箱。data 为 true 表示已被占用。
func (h *HTTPHandler) CheckEmail(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := h.userService.EmailExists(ctx, c.Query("email"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", exists)
}

// Me 返回当前登录用户的信息
func (h *HTTPHandler) Me(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", entity.MakeUserSummary(user))
}
