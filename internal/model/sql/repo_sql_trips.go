package sql

import (
	"context"
	"fmt"
	"strings"

	"travelog/internal/entity"
)

// CreateTrip persists a new trip record.
func (r *GormRepository) CreateTrip(ctx context.Context, trip *entity.DbTrip) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if trip == nil {
		return fmt.Errorf("trip is nil")
	}
	return r.db.WithContext(ctx).Create(trip).Error
}

// GetTripByID loads a trip by ID.
func (r *GormRepository) GetTripByID(ctx context.Context, id uint) (*entity.DbTrip, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid trip id")
	}
	var trip entity.DbTrip
	if err := r.db.WithContext(ctx).First(&trip, id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// SearchTrips returns the owner's trips matching the optional filters,
// paginated. The count runs against the same predicate before paging so the
// meta total always matches the filtered set.
func (r *GormRepository) SearchTrips(ctx context.Context, userID uint, cond *entity.TripSearchCondition, params *entity.BaseParams) ([]entity.DbTrip, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, nil, fmt.Errorf("invalid user id")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbTrip{}).Where("user_id = ?", userID)

	sortBy := entity.TripSortCreatedAt
	sortDir := entity.SortDesc
	if cond != nil {
		if cond.Status != nil {
			query = query.Where("status = ?", *cond.Status)
		}
		if keyword := strings.TrimSpace(cond.Destination); keyword != "" {
			query = query.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(keyword)+"%")
		}
		if keyword := strings.TrimSpace(cond.Title); keyword != "" {
			query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
		}
		if cond.SortBy != "" {
			sortBy = cond.SortBy
		}
		if cond.SortDir != "" {
			sortDir = cond.SortDir
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageBounds(params)

	var trips []entity.DbTrip
	err := query.Order(fmt.Sprintf("%s %s", sortBy.Column(), sortDir)).
		Offset(offset).Limit(pageSize).
		Find(&trips).Error
	if err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return trips, meta, nil
}
