package domain

import (
	"strings"
	"time"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// ParseStatus returns the status named by s, exactly as written.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusTodo, StatusInProgress, StatusDone:
		return st, true
	}
	return "", false
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch holds the fields of an update. Nil fields keep their stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
}

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortField maps the public sort names onto columns. Anything unknown
// sorts by creation time.
func ParseSortField(s string) SortField {
	switch s {
	case "updatedAt":
		return SortUpdatedAt
	default:
		return SortCreatedAt
	}
}

// ParseSortOrder is case-insensitive and defaults to descending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, "asc") {
		return SortAsc
	}
	return SortDesc
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// TaskQuery is a normalised list request. Page and Limit are always >= 1.
type TaskQuery struct {
	UserID int64
	Status *Status
	SortBy SortField
	Order  SortOrder
	Page   int
	Limit  int
}

// Offset is the number of rows skipped before the requested page.
func (q TaskQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination derives TotalPages as ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	l := int64(limit)
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + l - 1) / l,
	}
}

// TaskPage is the list envelope. Data is never nil.
type TaskPage struct {
	Data       []Task     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
