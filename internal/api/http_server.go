package api

import (
	"strings"
	"time"

	"travelog/internal/auth"
	"travelog/internal/config"
	"travelog/internal/model"
	"travelog/internal/service"
	"travelog/internal/storage"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	// 服务层
	userService      *service.UserService
	tripService      *service.TripService
	travelLogService *service.TravelLogService
	tagService       *service.TagService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	handler := &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
	}

	handler.userService = service.NewUserService(repo)
	handler.tripService = service.NewTripService(repo)
	handler.travelLogService = service.NewTravelLogService(repo, store, handler.publicURL)
	handler.tagService = service.NewTagService(repo)

	RegisterValidators()

	return handler, nil
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/uploads"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// publicURL 把存储键拼成客户端可访问的 URL
func (h *HTTPHandler) publicURL(key string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(key), "/")
	if trimmed == "" {
		return ""
	}
	return h.storagePublicBase + "/" + trimmed
}
