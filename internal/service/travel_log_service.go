package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"travelog/internal/apperr"
	"travelog/internal/entity"
	"travelog/internal/model"
	"travelog/internal/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxPhotosPerLog 单条日志允许的照片上限
const maxPhotosPerLog = 5

// PhotoUpload is one uploaded file as received by the API layer.
type PhotoUpload struct {
	OriginalFilename string
	ContentType      string
	Data             []byte
}

// TravelLogService 旅行日志相关的业务逻辑
type TravelLogService struct {
	repo       model.Repository
	storage    storage.Storage
	resolveURL func(key string) string
}

// NewTravelLogService 创建旅行日志服务实例。resolveURL 把存储键转换成
// 客户端可访问的 URL。
func NewTravelLogService(repo model.Repository, store storage.Storage, resolveURL func(string) string) *TravelLogService {
	return &TravelLogService{
		repo:       repo,
		storage:    store,
		resolveURL: resolveURL,
	}
}

// CreateTravelLog records a journal entry under an owned trip. Photo blobs
// are written to storage first, then the log, tag links and photo rows are
// inserted in one transaction. Blobs already saved when the transaction
// fails are left behind and only logged.
func (s *TravelLogService) CreateTravelLog(ctx context.Context, userID, tripID uint, req entity.TravelLogCreateRequest, uploads []PhotoUpload) (entity.TravelLogResponse, error) {
	trip, err := getOwnedTrip(ctx, s.repo, userID, tripID)
	if err != nil {
		return entity.TravelLogResponse{}, err
	}

	if req.LogDate.After(entity.Today()) {
		return entity.TravelLogResponse{}, apperr.ErrInvalidInput.WithMessage("log date must not be in the future")
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return entity.TravelLogResponse{}, apperr.ErrInvalidInput.WithMessage("rating must be between 1 and 5")
	}
	if req.Expenses != nil && *req.Expenses < 0 {
		return entity.TravelLogResponse{}, apperr.ErrInvalidInput.WithMessage("expenses must not be negative")
	}
	// 超过上限的文件直接忽略，只收前 5 个
	if len(uploads) > maxPhotosPerLog {
		uploads = uploads[:maxPhotosPerLog]
	}

	photos, err := s.savePhotoBlobs(ctx, trip, uploads)
	if err != nil {
		return entity.TravelLogResponse{}, err
	}

	log := &entity.DbTravelLog{
		Title:    req.Title,
		Content:  req.Content,
		LogDate:  req.LogDate,
		Location: req.Location,
		Mood:     req.Mood,
		Rating:   req.Rating,
		Expenses: req.Expenses,
		TripID:   trip.ID,
	}
	if err := s.repo.CreateTravelLog(ctx, log, req.TagIDs, photos); err != nil {
		if len(photos) > 0 {
			// 事务回滚后存储里会留下孤儿文件
			logrus.WithError(err).WithFields(logrus.Fields{
				"trip_id":     trip.ID,
				"photo_count": len(photos),
			}).Warn("travel log insert failed after photo blobs were stored")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.TravelLogResponse{}, apperr.ErrTagNotFound
		}
		return entity.TravelLogResponse{}, err
	}

	log.Trip = trip
	tags, err := s.repo.ListTagsByTravelLog(ctx, log.ID)
	if err != nil {
		return entity.TravelLogResponse{}, err
	}
	return entity.MakeTravelLogResponse(log, tags, s.resolveURL), nil
}

// savePhotoBlobs persists the usable uploads and returns the photo rows to
// insert. Empty payloads and files that are not images are skipped; a
// storage failure aborts the whole create.
func (s *TravelLogService) savePhotoBlobs(ctx context.Context, trip *entity.DbTrip, uploads []PhotoUpload) ([]entity.DbTravelPhoto, error) {
	photos := make([]entity.DbTravelPhoto, 0, len(uploads))
	order := 1
	for _, upload := range uploads {
		if len(upload.Data) == 0 {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(upload.ContentType)), "image/") {
			logrus.WithFields(logrus.Fields{
				"trip_id":      trip.ID,
				"filename":     upload.OriginalFilename,
				"content_type": upload.ContentType,
			}).Warn("skipping non-image upload")
			continue
		}

		ext := strings.TrimPrefix(path.Ext(upload.OriginalFilename), ".")
		key, err := s.storage.Save(ctx, upload.Data, storage.SaveOptions{
			Owner:       fmt.Sprintf("user-%d", trip.UserID),
			Extension:   ext,
			ContentType: upload.ContentType,
		})
		if err != nil {
			return nil, err
		}

		photos = append(photos, entity.DbTravelPhoto{
			StorageKey:       key,
			OriginalFilename: upload.OriginalFilename,
			ContentType:      upload.ContentType,
			FileSize:         int64(len(upload.Data)),
			DisplayOrder:     order,
		})
		order++
	}
	return photos, nil
}

// GetTravelLog returns the detail view of one owned log.
func (s *TravelLogService) GetTravelLog(ctx context.Context, userID, logID uint) (entity.TravelLogResponse, error) {
	log, err := getOwnedTravelLog(ctx, s.repo, userID, logID)
	if err != nil {
		return entity.TravelLogResponse{}, err
	}
	tags, err := s.repo.ListTagsByTravelLog(ctx, log.ID)
	if err != nil {
		return entity.TravelLogResponse{}, err
	}
	return entity.MakeTravelLogResponse(log, tags, s.resolveURL), nil
}

// ListByTrip returns the logs of one owned trip matching the filters.
func (s *TravelLogService) ListByTrip(ctx context.Context, userID, tripID uint, cond *entity.TravelLogSearchCondition, params *entity.BaseParams) ([]entity.TravelLogResponse, *entity.Meta, error) {
	if _, err := getOwnedTrip(ctx, s.repo, userID, tripID); err != nil {
		return nil, nil, err
	}
	logs, meta, err := s.repo.SearchTravelLogsByTrip(ctx, tripID, cond, params)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.buildResponses(ctx, logs)
	if err != nil {
		return nil, nil, err
	}
	return items, meta, nil
}

// ListByUser returns logs across every trip the user owns.
func (s *TravelLogService) ListByUser(ctx context.Context, userID uint, cond *entity.TravelLogSearchCondition, params *entity.BaseParams) ([]entity.TravelLogResponse, *entity.Meta, error) {
	logs, meta, err := s.repo.SearchTravelLogsByUser(ctx, userID, cond, params)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.buildResponses(ctx, logs)
	if err != nil {
		return nil, nil, err
	}
	return items, meta, nil
}

// SearchByKeyword searches the user's logs by title, content, location or
// tag name.
func (s *TravelLogService) SearchByKeyword(ctx context.Context, userID uint, keyword string, params *entity.BaseParams) ([]entity.TravelLogResponse, *entity.Meta, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil, apperr.ErrInvalidInput.WithMessage("search keyword must not be blank")
	}
	logs, meta, err := s.repo.SearchTravelLogsByKeyword(ctx, userID, keyword, params)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.buildResponses(ctx, logs)
	if err != nil {
		return nil, nil, err
	}
	return items, meta, nil
}

// GetPhotos returns the ordered photos of one owned log.
func (s *TravelLogService) GetPhotos(ctx context.Context, userID, logID uint) ([]entity.PhotoResponse, error) {
	if _, err := getOwnedTravelLog(ctx, s.repo, userID, logID); err != nil {
		return nil, err
	}
	photos, err := s.repo.ListPhotosByTravelLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	return entity.MakePhotoResponses(photos, s.resolveURL), nil
}

// GetTags returns the tags attached to one owned log.
func (s *TravelLogService) GetTags(ctx context.Context, userID, logID uint) ([]entity.TagResponse, error) {
	if _, err := getOwnedTravelLog(ctx, s.repo, userID, logID); err != nil {
		return nil, err
	}
	tags, err := s.repo.ListTagsByTravelLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	return entity.MakeTagResponses(tags), nil
}

func (s *TravelLogService) buildResponses(ctx context.Context, logs []entity.DbTravelLog) ([]entity.TravelLogResponse, error) {
	items := make([]entity.TravelLogResponse, 0, len(logs))
	for i := range logs {
		tags, err := s.repo.ListTagsByTravelLog(ctx, logs[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.MakeTravelLogResponse(&logs[i], tags, s.resolveURL))
	}
	return items, nil
}
