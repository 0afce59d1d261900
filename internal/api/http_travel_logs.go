package api

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"travelog/internal/apperr"
	"travelog/internal/entity"
	"travelog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

// maxUploadBytes 单个照片文件的大小上限
const maxUploadBytes = 10 << 20

// CreateTravelLog 在旅行下创建日志。目标旅行由 tripId 查询参数指定，
// 请求为 multipart 表单：data 字段是 JSON 的日志内容，files 字段是照片文件。
func (h *HTTPHandler) CreateTravelLog(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	tripID, err := queryID(c, "tripId")
	if err != nil {
		HandleError(c, err)
		return
	}

	raw := c.PostForm("data")
	if strings.TrimSpace(raw) == "" {
		Fail(c, apperr.ErrInvalidInput.WithMessage("missing data field"))
		return
	}
	var req entity.TravelLogCreateRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		Fail(c, apperr.ErrInvalidInput.WithMessage("invalid data payload"))
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		BindError(c, err)
		return
	}

	uploads, err := h.readUploads(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	resp, err := h.travelLogService.CreateTravelLog(ctx, user.ID, tripID, req, uploads)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "travel log created", resp)
}

// readUploads collects the files parts into memory.
func (h *HTTPHandler) readUploads(c *gin.Context) ([]service.PhotoUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperr.ErrInvalidInput.WithMessage("invalid multipart form")
	}

	files := form.File["files"]
	uploads := make([]service.PhotoUpload, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxUploadBytes {
			return nil, apperr.ErrInvalidInput.WithMessage("file too large: " + fh.Filename)
		}
		data, err := readFileHeader(fh)
		if err != nil {
			logrus.WithError(err).WithField("filename", fh.Filename).Error("failed to read upload")
			return nil, apperr.ErrInternal
		}
		uploads = append(uploads, service.PhotoUpload{
			OriginalFilename: fh.Filename,
			ContentType:      fh.Header.Get("Content-Type"),
			Data:             data,
		})
	}
	return uploads, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// GetTravelLog 查询单条日志详情
func (h *HTTPHandler) GetTravelLog(c *gin.Context) {
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

	resp, err := h.travelLogService.GetTravelLog(ctx, user.ID, logID)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, http.StatusOK, "", resp)
}

// ListTravelLogs 按条件分页查询日志。带 tripId 参数时限定在该旅行下，
// 否则跨当前用户的全部旅行。
func (h *HTTPHandler) ListTravelLogs(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	cond, params, err := travelLogQuery(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var (
		items []entity.TravelLogResponse
		meta  *entity.Meta
	)
	if raw := strings.TrimSpace(c.Query("tripId")); raw != "" {
		tripID, err := queryID(c, "tripId")
		if err != nil {
			HandleError(c, err)
			return
		}
		items, meta, err = h.travelLogService.ListByTrip(ctx, user.ID, tripID, cond, params)
		if err != nil {
			HandleError(c, err)
			return
		}
	} else {
		items, meta, err = h.travelLogService.ListByUser(ctx, user.ID, cond, params)
		if err != nil {
			HandleError(c, err)
			return
		}
	}
	OKPaged(c, "", items, meta)
}

// SearchTravelLogs 按关键词搜索日志（标题、内容、地点或标签名）
func (h *HTTPHandler) SearchTravelLogs(c *gin.Context) {
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

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, meta, err := h.travelLogService.SearchByKeyword(ctx, user.ID, c.Query("keyword"), &params)
	if err != nil {
		HandleError(c, err)
		return
	}
	OKPaged(c, "", items, meta)
}

// travelLogQuery 解析日志列表的过滤和分页参数
func travelLogQuery(c *gin.Context) (*entity.TravelLogSearchCondition, *entity.BaseParams, error) {
	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, nil, apperr.ErrInvalidInput
	}
	params.Normalize()

	cond := &entity.TravelLogSearchCondition{
		Title:    c.Query("title"),
		Content:  c.Query("content"),
		Location: c.Query("location"),
		Mood:     c.Query("mood"),
		SortBy:   entity.ParseTravelLogSortField(params.SortBy),
		SortDir:  entity.ParseSortDirection(params.SortDir),
	}

	if raw := strings.TrimSpace(c.Query("minRating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 1 || rating > 5 {
			return nil, nil, apperr.ErrInvalidInput.WithMessage("minRating must be between 1 and 5")
		}
		cond.MinRating = &rating
	}
	if raw := strings.TrimSpace(c.Query("logDate")); raw != "" {
		date, err := entity.ParseDate(raw)
		if err != nil {
			return nil, nil, apperr.ErrInvalidInput.WithMessage("logDate must be yyyy-MM-dd")
		}
		cond.LogDate = &date
	}
	if raw := strings.TrimSpace(c.Query("dateFrom")); raw != "" {
		date, err := entity.ParseDate(raw)
		if err != nil {
			return nil, nil, apperr.ErrInvalidInput.WithMessage("dateFrom must be yyyy-MM-dd")
		}
		cond.DateFrom = &date
	}
	if raw := strings.TrimSpace(c.Query("dateTo")); raw != "" {
		date, err := entity.ParseDate(raw)
		if err != nil {
			return nil, nil, apperr.ErrInvalidInput.WithMessage("dateTo must be yyyy-MM-dd")
		}
		cond.DateTo = &date
	}
	if raw := strings.TrimSpace(c.Query("hasExpenses")); raw != "" {
		flag, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, nil, apperr.ErrInvalidInput.WithMessage("hasExpenses must be true or false")
		}
		cond.HasExpenses = &flag
	}

	return cond, &params, nil
}
