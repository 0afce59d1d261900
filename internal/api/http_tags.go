package api

import (
	"context"
	"net/http"
	"time"

	"travelog/internal/entity"

	"github.com/gin-gonic/gin"
)

// CreateTag 创建共享标签
func (h *HTTPHandler) CreateTag(c *gin.Context) {
	var req entity.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tag, err := h.tagService.CreateTag(ctx, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusCreated, "tag created", tag)
}

// ListTagCategories 返回全部标签分类
func (h *HTTPHandler) ListTagCategories(c *gin.Context) {
	OK(c, http.StatusOK, "", entity.AllTagCategories())
}

// ListTagsByCategory 按分类查询标签
func (h *HTTPHandler) ListTagsByCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tags, err := h.tagService.GetTagsByCategory(ctx, c.Query("category"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", tags)
}

// SearchTags 按名称关键词搜索标签
func (h *HTTPHandler) SearchTags(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tags, err := h.tagService.SearchTags(ctx, c.Query("keyword"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", tags)
}

// GetTravelLogTags 查询一条日志关联的标签
func (h *HTTPHandler) GetTravelLogTags(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	logID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tags, err := h.travelLogService.GetTags(ctx, user.ID, logID)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", tags)
}

// GetTravelLogPhotos 查询一条日志的照片，按展示顺序排列
func (h *HTTPHandler) GetTravelLogPhotos(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	logID, err := pathID(c, "travelLogId")
	if err != nil {
		HandleError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	photos, err := h.travelLogService.GetPhotos(ctx, user.ID, logID)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", photos)
}
