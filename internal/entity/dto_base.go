package entity

import "time"

// Response 统一响应包装
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	ErrorCode string      `json:"errorCode,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// PagedData wraps a list payload together with its paging metadata.
type PagedData struct {
	Items interface{} `json:"items"`
	Meta  *Meta       `json:"meta"`
}

type Meta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// BaseParams 分页与排序的公共查询参数。page 从 0 开始计数。
type BaseParams struct {
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"pageSize" form:"size"`
	SortBy   string `json:"sortBy" form:"sortBy"`
	SortDir  string `json:"sortDir" form:"sortDirection"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Normalize clamps paging values to sane bounds.
func (p *BaseParams) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

// ValidationError describes a single rejected request field.
type ValidationError struct {
	Field         string      `json:"field"`
	Message       string      `json:"message"`
	RejectedValue interface{} `json:"rejectedValue,omitempty"`
}
