package model

import (
	"context"

	"travelog/internal/entity"
)

// Repository 定义数据库操作接口
//
// 所有读写旅行数据的方法都要求调用方传入所有者 userID，查询在仓库层
// 就被限定在该用户的数据范围内。
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	ExistsUserByUsername(ctx context.Context, username string) (bool, error)
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)

	// 旅行
	CreateTrip(ctx context.Context, trip *entity.DbTrip) error
	GetTripByID(ctx context.Context, id uint) (*entity.DbTrip, error)
	SearchTrips(ctx context.Context, userID uint, cond *entity.TripSearchCondition, params *entity.BaseParams) ([]entity.DbTrip, *entity.Meta, error)

	// 旅行日志。CreateTravelLog 在单个事务里写入日志、标签关联和照片行。
	CreateTravelLog(ctx context.Context, log *entity.DbTravelLog, tagIDs []uint, photos []entity.DbTravelPhoto) error
	GetTravelLogByID(ctx context.Context, id uint) (*entity.DbTravelLog, error)
	SearchTravelLogsByTrip(ctx context.Context, tripID uint, cond *entity.TravelLogSearchCondition, params *entity.BaseParams) ([]entity.DbTravelLog, *entity.Meta, error)
	SearchTravelLogsByUser(ctx context.Context, userID uint, cond *entity.TravelLogSearchCondition, params *entity.BaseParams) ([]entity.DbTravelLog, *entity.Meta, error)
	SearchTravelLogsByKeyword(ctx context.Context, userID uint, keyword string, params *entity.BaseParams) ([]entity.DbTravelLog, *entity.Meta, error)

	// 统计
	CountTravelLogsByTrip(ctx context.Context, tripID uint) (int64, error)
	AverageRatingByTrip(ctx context.Context, tripID uint) (float64, error)
	TotalExpensesByTrip(ctx context.Context, tripID uint) (int64, error)
	CountTravelLogsByUser(ctx context.Context, userID uint) (int64, error)
	AverageRatingByUser(ctx context.Context, userID uint) (float64, error)
	TotalExpensesByUser(ctx context.Context, userID uint) (int64, error)

	// 标签
	CreateTag(ctx context.Context, tag *entity.DbTag) error
	TagExistsByName(ctx context.Context, name string) (bool, error)
	ListTagsByCategory(ctx context.Context, category entity.TagCategory) ([]entity.DbTag, error)
	SearchTagsByName(ctx context.Context, keyword string) ([]entity.DbTag, error)
	FindTagsByIDs(ctx context.Context, ids []uint) ([]entity.DbTag, error)
	ListTagsByTravelLog(ctx context.Context, travelLogID uint) ([]entity.DbTag, error)

	// 照片
	ListPhotosByTravelLog(ctx context.Context, travelLogID uint) ([]entity.DbTravelPhoto, error)
}
