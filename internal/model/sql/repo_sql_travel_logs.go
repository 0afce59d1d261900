package sql

import (
	"context"
	"fmt"
	"strings"

	"travelog/internal/entity"

	"gorm.io/gorm"
)

// CreateTravelLog persists a travel log together with its tag links and photo
// rows in a single transaction. A tag ID that does not exist fails the whole
// transaction, leaving no partial rows behind.
func (r *GormRepository) CreateTravelLog(ctx context.Context, log *entity.DbTravelLog, tagIDs []uint, photos []entity.DbTravelPhoto) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if log == nil {
		return fmt.Errorf("travel log is nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}

		if len(tagIDs) > 0 {
			var count int64
			if err := tx.Model(&entity.DbTag{}).Where("id IN ?", tagIDs).Count(&count).Error; err != nil {
				return err
			}
			if count != int64(len(tagIDs)) {
				return gorm.ErrRecordNotFound
			}
			links := make([]entity.DbTravelLogTag, 0, len(tagIDs))
			for _, tagID := range tagIDs {
				links = append(links, entity.DbTravelLogTag{TravelLogID: log.ID, TagID: tagID})
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		if len(photos) > 0 {
			for i := range photos {
				photos[i].TravelLogID = log.ID
			}
			if err := tx.Create(&photos).Error; err != nil {
				return err
			}
			log.Photos = photos
		}

		return nil
	})
}

// GetTravelLogByID loads a travel log with its trip and ordered photos.
func (r *GormRepository) GetTravelLogByID(ctx context.Context, id uint) (*entity.DbTravelLog, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid travel log id")
	}
	var log entity.DbTravelLog
	err := r.db.WithContext(ctx).
		Preload("Trip").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		First(&log, id).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// applyTravelLogCondition appends the optional filters and returns the
// resolved sort clause.
func applyTravelLogCondition(query *gorm.DB, cond *entity.TravelLogSearchCondition) (*gorm.DB, string) {
	sortBy := entity.TravelLogSortLogDate
	sortDir := entity.SortDesc
	if cond != nil {
		if keyword := strings.TrimSpace(cond.Title); keyword != "" {
			query = query.Where("LOWER(travel_logs.title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
		}
		if keyword := strings.TrimSpace(cond.Content); keyword != "" {
			query = query.Where("LOWER(travel_logs.content) LIKE ?", "%"+strings.ToLower(keyword)+"%")
		}
		if keyword := strings.TrimSpace(cond.Location); keyword != "" {
			query = query.Where("LOWER(travel_logs.location) LIKE ?", "%"+strings.ToLower(keyword)+"%")
		}
		if keyword := strings.TrimSpace(cond.Mood); keyword != "" {
			query = query.Where("LOWER(travel_logs.mood) LIKE ?", "%"+strings.ToLower(keyword)+"%")
		}
		if cond.LogDate != nil && !cond.LogDate.IsZero() {
			query = query.Where("travel_logs.log_date = ?", *cond.LogDate)
		}
		if cond.DateFrom != nil && !cond.DateFrom.IsZero() {
			query = query.Where("travel_logs.log_date >= ?", *cond.DateFrom)
		}
		if cond.DateTo != nil && !cond.DateTo.IsZero() {
			query = query.Where("travel_logs.log_date <= ?", *cond.DateTo)
		}
		if cond.MinRating != nil {
			query = query.Where("travel_logs.rating >= ?", *cond.MinRating)
		}
		if cond.HasExpenses != nil {
			if *cond.HasExpenses {
				query = query.Where("travel_logs.expenses > 0")
			} else {
				query = query.Where("(travel_logs.expenses IS NULL OR travel_logs.expenses = 0)")
			}
		}
		if cond.SortBy != "" {
			sortBy = cond.SortBy
		}
		if cond.SortDir != "" {
			sortDir = cond.SortDir
		}
	}
	return query, fmt.Sprintf("travel_logs.%s %s", sortBy.Column(), sortDir)
}

// SearchTravelLogsByTrip returns the logs of one trip matching the optional
// filters, paginated. Ownership of the trip is checked by the caller.
func (r *GormRepository) SearchTravelLogsByTrip(ctx context.Context, tripID uint, cond *entity.TravelLogSearchCondition, params *entity.BaseParams) ([]entity.DbTravelLog, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}
	if tripID == 0 {
		return nil, nil, fmt.Errorf("invalid trip id")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).Where("travel_logs.trip_id = ?", tripID)
	query, order := applyTravelLogCondition(query, cond)

	return r.pageTravelLogs(query, order, params)
}

// SearchTravelLogsByUser returns all logs across the user's trips matching
// the optional filters, paginated.
func (r *GormRepository) SearchTravelLogsByUser(ctx context.Context, userID uint, cond *entity.TravelLogSearchCondition, params *entity.BaseParams) ([]entity.DbTravelLog, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, nil, fmt.Errorf("invalid user id")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).
		Joins("JOIN trips ON trips.id = travel_logs.trip_id").
		Where("trips.user_id = ?", userID)
	query, order := applyTravelLogCondition(query, cond)

	return r.pageTravelLogs(query, order, params)
}

// SearchTravelLogsByKeyword searches the user's logs whose title, content,
// location or attached tag name contains the keyword. The tag join can match
// one log several times, so both the count and the result set are
// deduplicated on the log id.
func (r *GormRepository) SearchTravelLogsByKeyword(ctx context.Context, userID uint, keyword string, params *entity.BaseParams) ([]entity.DbTravelLog, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, nil, fmt.Errorf("invalid user id")
	}

	kw := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	query := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).
		Joins("JOIN trips ON trips.id = travel_logs.trip_id").
		Joins("LEFT JOIN travel_log_tags ON travel_log_tags.travel_log_id = travel_logs.id").
		Joins("LEFT JOIN tags ON tags.id = travel_log_tags.tag_id").
		Where("trips.user_id = ?", userID).
		Where("LOWER(travel_logs.title) LIKE ? OR LOWER(travel_logs.content) LIKE ? OR LOWER(travel_logs.location) LIKE ? OR LOWER(tags.name) LIKE ?",
			kw, kw, kw, kw)

	var total int64
	if err := query.Distinct("travel_logs.id").Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageBounds(params)

	var logs []entity.DbTravelLog
	err := query.Distinct("travel_logs.*").
		Preload("Trip").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order("travel_logs.log_date DESC").
		Offset(offset).Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return logs, meta, nil
}

// pageTravelLogs runs the shared count-then-page tail of a log search.
func (r *GormRepository) pageTravelLogs(query *gorm.DB, order string, params *entity.BaseParams) ([]entity.DbTravelLog, *entity.Meta, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageBounds(params)

	var logs []entity.DbTravelLog
	err := query.
		Preload("Trip").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order(order).
		Offset(offset).Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return logs, meta, nil
}

// CountTravelLogsByTrip returns the number of logs under a trip.
func (r *GormRepository) CountTravelLogsByTrip(ctx context.Context, tripID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).
		Where("trip_id = ?", tripID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AverageRatingByTrip returns the average rating of a trip's rated logs,
// or 0 when none are rated.
func (r *GormRepository) AverageRatingByTrip(ctx context.Context, tripID uint) (float64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var avg float64
	err := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).
		Where("trip_id = ? AND rating IS NOT NULL", tripID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

// TotalExpensesByTrip returns the expense sum of a trip's logs, or 0.
func (r *GormRepository) TotalExpensesByTrip(ctx context.Context, tripID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).
		Where("trip_id = ?", tripID).
		Select("COALESCE(SUM(expenses), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// CountTravelLogsByUser returns the number of logs across the user's trips.
func (r *GormRepository) CountTravelLogsByUser(ctx context.Context, userID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).
		Joins("JOIN trips ON trips.id = travel_logs.trip_id").
		Where("trips.user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AverageRatingByUser returns the average rating across the user's rated
// logs, or 0 when none are rated.
func (r *GormRepository) AverageRatingByUser(ctx context.Context, userID uint) (float64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var avg float64
	err := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).
		Joins("JOIN trips ON trips.id = travel_logs.trip_id").
		Where("trips.user_id = ? AND travel_logs.rating IS NOT NULL", userID).
		Select("COALESCE(AVG(travel_logs.rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

// TotalExpensesByUser returns the expense sum across the user's logs, or 0.
func (r *GormRepository) TotalExpensesByUser(ctx context.Context, userID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.DbTravelLog{}).
		Joins("JOIN trips ON trips.id = travel_logs.trip_id").
		Where("trips.user_id = ?", userID).
		Select("COALESCE(SUM(travel_logs.expenses), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
