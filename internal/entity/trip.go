package entity

import (
	"strings"
	"time"
)

// TripStatus 旅行的生命周期状态
type TripStatus string

const (
	TripStatusPlanning  TripStatus = "PLANNING"
	TripStatusOngoing   TripStatus = "ONGOING"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// ParseTripStatus normalises a raw status string. Unknown values yield
// ("", false) so callers can drop the filter instead of failing.
func ParseTripStatus(raw string) (TripStatus, bool) {
	switch TripStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case TripStatusPlanning:
		return TripStatusPlanning, true
	case TripStatusOngoing:
		return TripStatusOngoing, true
	case TripStatusCompleted:
		return TripStatusCompleted, true
	case TripStatusCancelled:
		return TripStatusCancelled, true
	default:
		return "", false
	}
}

// Description returns the human label shown in list views.
func (s TripStatus) Description() string {
	switch s {
	case TripStatusPlanning:
		return "계획중"
	case TripStatusOngoing:
		return "진행중"
	case TripStatusCompleted:
		return "완료"
	case TripStatusCancelled:
		return "취소"
	default:
		return string(s)
	}
}

// TripStatusInfo carries the display metadata the front-end uses to render a
// status badge.
type TripStatusInfo struct {
	Status      TripStatus `json:"status"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
}

// MakeTripStatusInfo maps a status to its badge color and icon.
func MakeTripStatusInfo(status TripStatus) TripStatusInfo {
	info := TripStatusInfo{Status: status, Description: status.Description()}
	switch status {
	case TripStatusOngoing:
		info.Color, info.Icon = "primary", "bi-airplane"
	case TripStatusCompleted:
		info.Color, info.Icon = "success", "bi-check-circle"
	case TripStatusCancelled:
		info.Color, info.Icon = "danger", "bi-x-circle"
	default:
		info.Color, info.Icon = "warning", "bi-calendar-check"
	}
	return info
}

// DbTrip represents a persisted trip owned by exactly one user.
type DbTrip struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Title       string     `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	StartDate   Date       `gorm:"column:start_date;type:date;not null" json:"startDate"`
	EndDate     Date       `gorm:"column:end_date;type:date;not null" json:"endDate"`
	Status      TripStatus `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Destination string     `gorm:"column:destination;type:varchar(100)" json:"destination"`
	Budget      *int64     `gorm:"column:budget" json:"budget"`
	UserID      uint       `gorm:"column:user_id;index;not null" json:"-"`
	User        *DbUser    `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 指定表名
func (DbTrip) TableName() string {
	return "trips"
}

// Duration returns the inclusive day count between start and end date.
func (t *DbTrip) Duration() int {
	if t == nil || t.StartDate.IsZero() || t.EndDate.IsZero() {
		return 0
	}
	return t.StartDate.DaysUntil(t.EndDate) + 1
}

type TripCreateRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
	StartDate   Date   `json:"startDate" binding:"required"`
	EndDate     Date   `json:"endDate" binding:"required"`
	Status      string `json:"status"`
	Destination string `json:"destination" binding:"max=100"`
	Budget      *int64 `json:"budget"`
}

// TripSortField 旅行列表排序字段（封闭集合）
type TripSortField string

const (
	TripSortCreatedAt   TripSortField = "createdAt"
	TripSortStartDate   TripSortField = "startDate"
	TripSortEndDate     TripSortField = "endDate"
	TripSortTitle       TripSortField = "title"
	TripSortDestination TripSortField = "destination"
)

// ParseTripSortField maps a raw sort key onto the allow-list, falling back to
// createdAt for anything unrecognised.
func ParseTripSortField(raw string) TripSortField {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "startdate":
		return TripSortStartDate
	case "enddate":
		return TripSortEndDate
	case "title":
		return TripSortTitle
	case "destination":
		return TripSortDestination
	default:
		return TripSortCreatedAt
	}
}

// Column returns the order-by column for the sort field.
func (f TripSortField) Column() string {
	switch f {
	case TripSortStartDate:
		return "start_date"
	case TripSortEndDate:
		return "end_date"
	case TripSortTitle:
		return "title"
	case TripSortDestination:
		return "destination"
	default:
		return "created_at"
	}
}

// SortDirection ASC/DESC，默认 DESC
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection falls back to DESC for anything that is not ASC.
func ParseSortDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// TripSearchCondition holds the optional trip list filters. Absent fields
// mean "no filter"; the owner scope is supplied separately and is never
// optional.
type TripSearchCondition struct {
	Status      *TripStatus
	Destination string
	Title       string
	SortBy      TripSortField
	SortDir     SortDirection
}

// TripListItem 列表页使用的精简字段
type TripListItem struct {
	ID                uint           `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	StartDate         Date           `json:"startDate"`
	Status            TripStatus     `json:"status"`
	StatusDescription string         `json:"statusDescription"`
	StatusInfo        TripStatusInfo `json:"statusInfo"`
	Destination       string         `json:"destination"`
	Budget            *int64         `json:"budget"`
	Duration          int            `json:"duration"`
}

// MakeTripListItem maps a trip entity to its list projection.
func MakeTripListItem(trip *DbTrip) TripListItem {
	if trip == nil {
		return TripListItem{}
	}
	return TripListItem{
		ID:                trip.ID,
		Title:             trip.Title,
		Description:       trip.Description,
		StartDate:         trip.StartDate,
		Status:            trip.Status,
		StatusDescription: trip.Status.Description(),
		StatusInfo:        MakeTripStatusInfo(trip.Status),
		Destination:       trip.Destination,
		Budget:            trip.Budget,
		Duration:          trip.Duration(),
	}
}

// TripStats aggregates the travel logs of a trip.
type TripStats struct {
	LogCount      int64   `json:"logCount"`
	AverageRating float64 `json:"averageRating"`
	TotalExpenses int64   `json:"totalExpenses"`
}

// TripDetail 详情页返回的完整信息
type TripDetail struct {
	ID                uint           `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	StartDate         Date           `json:"startDate"`
	EndDate           Date           `json:"endDate"`
	Status            TripStatus     `json:"status"`
	StatusDescription string         `json:"statusDescription"`
	StatusInfo        TripStatusInfo `json:"statusInfo"`
	Destination       string         `json:"destination"`
	Budget            *int64         `json:"budget"`
	Duration          int            `json:"duration"`
	Stats             TripStats      `json:"stats"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// MakeTripDetail maps a trip entity plus its aggregates to the detail DTO.
func MakeTripDetail(trip *DbTrip, stats TripStats) TripDetail {
	if trip == nil {
		return TripDetail{}
	}
	return TripDetail{
		ID:                trip.ID,
		Title:             trip.Title,
		Description:       trip.Description,
		StartDate:         trip.StartDate,
		EndDate:           trip.EndDate,
		Status:            trip.Status,
		StatusDescription: trip.Status.Description(),
		StatusInfo:        MakeTripStatusInfo(trip.Status),
		Destination:       trip.Destination,
		Budget:            trip.Budget,
		Duration:          trip.Duration(),
		Stats:             stats,
		CreatedAt:         trip.CreatedAt,
		UpdatedAt:         trip.UpdatedAt,
	}
}
