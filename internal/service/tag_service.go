package service

import (
	"context"
	"errors"
	"strings"

	"travelog/internal/apperr"
	"travelog/internal/entity"
	"travelog/internal/model"

	"gorm.io/gorm"
)

// TagService 标签相关的业务逻辑。标签是全局共享的，不归属于单个用户。
type TagService struct {
	repo model.Repository
}

// NewTagService 创建标签服务实例
func NewTagService(repo model.Repository) *TagService {
	return &TagService{repo: repo}
}

// CreateTag creates a shared tag. Names are unique case-insensitively; the
// unique index backstops concurrent creates.
func (s *TagService) CreateTag(ctx context.Context, req entity.TagCreateRequest) (entity.TagResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return entity.TagResponse{}, apperr.ErrInvalidInput.WithMessage("tag name must not be blank")
	}

	category, ok := entity.LookupTagCategory(req.Category)
	if !ok {
		return entity.TagResponse{}, apperr.ErrInvalidInput.WithMessage("unknown tag category: " + req.Category)
	}

	exists, err := s.repo.TagExistsByName(ctx, name)
	if err != nil {
		return entity.TagResponse{}, err
	}
	if exists {
		return entity.TagResponse{}, apperr.ErrDuplicateTagName
	}

	tag := &entity.DbTag{
		Name:        name,
		Category:    category,
		Color:       strings.TrimSpace(req.Color),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.TagResponse{}, apperr.ErrDuplicateTagName
		}
		return entity.TagResponse{}, err
	}
	return entity.MakeTagResponse(tag), nil
}

// GetTagsByCategory lists the tags of one category. Unknown categories are an
// input error rather than an empty result.
func (s *TagService) GetTagsByCategory(ctx context.Context, rawCategory string) ([]entity.TagResponse, error) {
	category, ok := entity.LookupTagCategory(rawCategory)
	if !ok {
		return nil, apperr.ErrInvalidInput.WithMessage("unknown tag category: " + rawCategory)
	}
	tags, err := s.repo.ListTagsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return entity.MakeTagResponses(tags), nil
}

// SearchTags returns tags whose name contains the keyword.
func (s *TagService) SearchTags(ctx context.Context, keyword string) ([]entity.TagResponse, error) {
	tags, err := s.repo.SearchTagsByName(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return entity.MakeTagResponses(tags), nil
}
