package sql

import (
	"travelog/internal/entity"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int) *entity.Meta {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page < 0 {
		page = 0
	}

	return &entity.Meta{
		Total:    totalCount,
		Page:     page,
		PageSize: pageSize,
	}
}

// pageBounds resolves the effective page, pageSize and offset. Pages are
// zero-based.
func pageBounds(params *entity.BaseParams) (page, pageSize, offset int) {
	page, pageSize = 0, 10
	if params != nil {
		if params.Page > 0 {
			page = params.Page
		}
		if params.PageSize > 0 {
			pageSize = params.PageSize
		}
	}
	return page, pageSize, page * pageSize
}
