package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"travelog/internal/api"
	"travelog/internal/config"
	"travelog/internal/model"
	"travelog/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Recovery())
	r.Use(httpHandler.Authenticate())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/signup", httpHandler.Signup)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.GET("/check-username", httpHandler.CheckUsername)
	authGroup.GET("/check-email", httpHandler.CheckEmail)
	authGroup.GET("/me", httpHandler.RequireAuth(), httpHandler.Me)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.RequireAuth())

	protected.POST("/trips", httpHandler.CreateTrip)
	protected.GET("/trips", httpHandler.ListTrips)
	protected.GET("/trips/stats", httpHandler.GetTravelStats)
	protected.GET("/trips/:id", httpHandler.GetTrip)

	protected.POST("/travel-logs", httpHandler.CreateTravelLog)
	protected.GET("/travel-logs", httpHandler.ListTravelLogs)
	protected.GET("/travel-logs/search", httpHandler.SearchTravelLogs)
	protected.GET("/travel-logs/:id", httpHandler.GetTravelLog)
	protected.GET("/travel-logs/:id/tags", httpHandler.GetTravelLogTags)

	protected.GET("/photos/:travelLogId", httpHandler.GetTravelLogPhotos)

	protected.POST("/tags", httpHandler.CreateTag)
	protected.GET("/tags", httpHandler.ListTagsByCategory)
	protected.GET("/tags/categories", httpHandler.ListTagCategories)
	protected.GET("/tags/search", httpHandler.SearchTags)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/uploads"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("服务器启动")
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  300 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("服务器启动失败")
	}
}

// LoggingMiddleware 日志记录中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
