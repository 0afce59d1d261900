package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"travelog/internal/apperr"
	"travelog/internal/entity"

	"github.com/gin-gonic/gin"
)

// CreateTrip 创建旅行
func (h *HTTPHandler) CreateTrip(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var req entity.TripCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	trip, err := h.tripService.CreateTrip(ctx, user.ID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	// 新建的旅行还没有日志，统计全零
	OK(c, http.StatusOK, "trip created", entity.MakeTripDetail(trip, entity.TripStats{}))
}

// ListTrips 按条件分页查询当前用户的旅行
func (h *HTTPHandler) ListTrips(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		BindError(c, err)
		return
	}
	params.Normalize()

	cond := &entity.TripSearchCondition{
		Destination: c.Query("destination"),
		Title:       c.Query("title"),
		SortBy:      entity.ParseTripSortField(params.SortBy),
		SortDir:     entity.ParseSortDirection(params.SortDir),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := entity.ParseTripStatus(raw)
		if !ok {
			Fail(c, apperr.ErrInvalidInput.WithMessage("unknown trip status: "+raw))
			return
		}
		cond.Status = &status
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, meta, err := h.tripService.ListTrips(ctx, user.ID, cond, &params)
	if err != nil {
		HandleError(c, err)
		return
	}
	OKPaged(c, "", items, meta)
}

// GetTrip 查询单个旅行的详情和日志统计
func (h *HTTPHandler) GetTrip(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	tripID, err := pathID(c, "id")
	if err != nil {
		HandleError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.tripService.GetTrip(ctx, user.ID, tripID)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", detail)
}

// GetTravelStats 当前用户所有旅行的汇总统计
func (h *HTTPHandler) GetTravelStats(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.tripService.UserTravelStats(ctx, user.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", stats)
}

// pathID 解析路径中的数字 ID
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.ErrInvalidInput.WithMessage("invalid id: " + raw)
	}
	return uint(id), nil
}

// queryID 解析查询参数中的数字 ID
func queryID(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.ErrInvalidInput.WithMessage("invalid " + name + ": " + raw)
	}
	return uint(id), nil
}
