package sql

import (
	"context"
	"fmt"
	"strings"

	"travelog/internal/entity"
)

// CreateTag persists a new tag record.
func (r *GormRepository) CreateTag(ctx context.Context, tag *entity.DbTag) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}
	return r.db.WithContext(ctx).Create(tag).Error
}

// TagExistsByName reports whether a tag with the given name exists,
// case-insensitively.
func (r *GormRepository) TagExistsByName(ctx context.Context, name string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbTag{}).
		Where("LOWER(name) = ?", strings.ToLower(trimmed)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListTagsByCategory returns all tags in one category, ordered by name.
func (r *GormRepository) ListTagsByCategory(ctx context.Context, category entity.TagCategory) ([]entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var tags []entity.DbTag
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// SearchTagsByName returns tags whose name contains the keyword, ordered by
// name.
func (r *GormRepository) SearchTagsByName(ctx context.Context, keyword string) ([]entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return []entity.DbTag{}, nil
	}

	var tags []entity.DbTag
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(trimmed)+"%").
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// FindTagsByIDs loads the tags with the given IDs.
func (r *GormRepository) FindTagsByIDs(ctx context.Context, ids []uint) ([]entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(ids) == 0 {
		return []entity.DbTag{}, nil
	}
	var tags []entity.DbTag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListTagsByTravelLog returns the tags linked to one travel log, ordered by
// name.
func (r *GormRepository) ListTagsByTravelLog(ctx context.Context, travelLogID uint) ([]entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if travelLogID == 0 {
		return nil, fmt.Errorf("invalid travel log id")
	}
	var tags []entity.DbTag
	err := r.db.WithContext(ctx).
		Joins("JOIN travel_log_tags ON travel_log_tags.tag_id = tags.id").
		Where("travel_log_tags.travel_log_id = ?", travelLogID).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// ListPhotosByTravelLog returns a log's photos ordered by display order.
func (r *GormRepository) ListPhotosByTravelLog(ctx context.Context, travelLogID uint) ([]entity.DbTravelPhoto, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if travelLogID == 0 {
		return nil, fmt.Errorf("invalid travel log id")
	}
	var photos []entity.DbTravelPhoto
	err := r.db.WithContext(ctx).
		Where("travel_log_id = ?", travelLogID).
		Order("display_order ASC, id ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}
