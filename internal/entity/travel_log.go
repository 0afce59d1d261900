package entity

import (
	"strings"
	"time"
)

// DbTravelLog is a single journal entry recorded under a trip.
type DbTravelLog struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Title     string          `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Content   string          `gorm:"column:content;type:text" json:"content"`
	LogDate   Date            `gorm:"column:log_date;type:date;not null" json:"logDate"`
	Location  string          `gorm:"column:location;type:varchar(100)" json:"location"`
	Mood      string          `gorm:"column:mood;type:varchar(50)" json:"mood"`
	Rating    *int            `gorm:"column:rating" json:"rating"`
	Expenses  *int64          `gorm:"column:expenses" json:"expenses"`
	TripID    uint            `gorm:"column:trip_id;index;not null" json:"tripId"`
	Trip      *DbTrip         `gorm:"foreignKey:TripID" json:"-"`
	Photos    []DbTravelPhoto `gorm:"foreignKey:TravelLogID" json:"-"`
}

// TableName 指定表名
func (DbTravelLog) TableName() string {
	return "travel_logs"
}

// TravelLogCreateRequest is the "data" part of the multipart create request.
type TravelLogCreateRequest struct {
	Title    string `json:"title" binding:"required,max=100"`
	Content  string `json:"content" binding:"max=2000"`
	LogDate  Date   `json:"logDate" binding:"required"`
	Location string `json:"location" binding:"max=100"`
	Mood     string `json:"mood" binding:"max=50"`
	Rating   *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Expenses *int64 `json:"expenses" binding:"omitempty,min=0"`
	TagIDs   []uint `json:"tagIds"`
}

// TravelLogSortField 日志列表排序字段（封闭集合）
type TravelLogSortField string

const (
	TravelLogSortLogDate   TravelLogSortField = "logDate"
	TravelLogSortCreatedAt TravelLogSortField = "createdAt"
	TravelLogSortRating    TravelLogSortField = "rating"
	TravelLogSortExpenses  TravelLogSortField = "expenses"
)

// ParseTravelLogSortField maps a raw sort key onto the allow-list, falling
// back to logDate for anything unrecognised.
func ParseTravelLogSortField(raw string) TravelLogSortField {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "createdat":
		return TravelLogSortCreatedAt
	case "rating":
		return TravelLogSortRating
	case "expenses":
		return TravelLogSortExpenses
	default:
		return TravelLogSortLogDate
	}
}

// Column returns the order-by column for the sort field.
func (f TravelLogSortField) Column() string {
	switch f {
	case TravelLogSortCreatedAt:
		return "created_at"
	case TravelLogSortRating:
		return "rating"
	case TravelLogSortExpenses:
		return "expenses"
	default:
		return "log_date"
	}
}

// TravelLogSearchCondition holds the optional travel log filters. Absent
// fields mean "no filter"; the owner or trip scope is supplied separately.
// HasExpenses true keeps logs with expenses > 0, false keeps logs whose
// expenses are null or zero.
type TravelLogSearchCondition struct {
	Title       string
	Content     string
	Location    string
	Mood        string
	LogDate     *Date
	DateFrom    *Date
	DateTo      *Date
	MinRating   *int
	HasExpenses *bool
	SortBy      TravelLogSortField
	SortDir     SortDirection
}

// TravelLogTripSummary 日志响应里内嵌的旅行摘要
type TravelLogTripSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	Status      TripStatus `json:"status"`
}

// TravelLogResponse 日志的对外表示
type TravelLogResponse struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	Content       string                `json:"content"`
	LogDate       Date                  `json:"logDate"`
	Location      string                `json:"location"`
	Mood          string                `json:"mood"`
	Rating        *int                  `json:"rating"`
	Expenses      *int64                `json:"expenses"`
	Trip          *TravelLogTripSummary `json:"trip,omitempty"`
	Tags          []TagResponse         `json:"tags"`
	Photos        []PhotoResponse       `json:"photos"`
	CoverImageURL string                `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// MakeTravelLogResponse maps a travel log plus its loaded associations to the
// client projection. The cover image is the photo with the lowest display
// order.
func MakeTravelLogResponse(log *DbTravelLog, tags []DbTag, resolveURL func(string) string) TravelLogResponse {
	if log == nil {
		return TravelLogResponse{}
	}
	resp := TravelLogResponse{
		ID:        log.ID,
		Title:     log.Title,
		Content:   log.Content,
		LogDate:   log.LogDate,
		Location:  log.Location,
		Mood:      log.Mood,
		Rating:    log.Rating,
		Expenses:  log.Expenses,
		Tags:      MakeTagResponses(tags),
		Photos:    MakePhotoResponses(log.Photos, resolveURL),
		CreatedAt: log.CreatedAt,
		UpdatedAt: log.UpdatedAt,
	}
	if log.Trip != nil {
		resp.Trip = &TravelLogTripSummary{
			ID:          log.Trip.ID,
			Title:       log.Trip.Title,
			Destination: log.Trip.Destination,
			Status:      log.Trip.Status,
		}
	}
	if cover := CoverPhoto(log.Photos); cover != nil {
		resp.CoverImageURL = MakePhotoResponse(cover, resolveURL).URL
	}
	return resp
}

// CoverPhoto picks the photo with the lowest display order, or nil when the
// log has no photos.
func CoverPhoto(photos []DbTravelPhoto) *DbTravelPhoto {
	var cover *DbTravelPhoto
	for i := range photos {
		if cover == nil || photos[i].DisplayOrder < cover.DisplayOrder {
			cover = &photos[i]
		}
	}
	return cover
}
