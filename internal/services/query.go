package services

import (
	"errors"
	"strings"
	"time"

	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	dayLayout       = "2006-01-02"
)

// PageRequest carries the shared page/limit query parameters.
type PageRequest struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

func (r *PageRequest) normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = defaultPageSize
	}
	if r.Limit > maxPageSize {
		r.Limit = maxPageSize
	}
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// Page is the list envelope payload. Items is never nil.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func newPagination(total int64, page, limit int) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return Pagination{Total: total, Page: page, Pages: pages}
}

// paginate counts the filtered query, then loads one page of it. Preloads are
// applied after counting.
func paginate[T any](query *gorm.DB, req PageRequest, order string, preload func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	req.normalize()
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, req.Limit)
	if total > 0 {
		q := query.Order(order).Offset((req.Page - 1) * req.Limit).Limit(req.Limit)
		if preload != nil {
			q = preload(q)
		}
		if err := q.Find(&items).Error; err != nil {
			return nil, err
		}
	}

	return &Page[T]{Items: items, Pagination: newPagination(total, req.Page, req.Limit)}, nil
}

// parseDay parses a YYYY-MM-DD filter value. Empty input yields nil.
func parseDay(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dayLayout, value, time.UTC)
	if err != nil {
		return nil, response.NewBadRequestf("%s must be a date in YYYY-MM-DD format", field)
	}
	return &t, nil
}

// utc normalizes stored timestamps so string-compared sqlite columns order
// correctly.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// applyDateRange restricts column to the inclusive day range [from, to].
func applyDateRange(query *gorm.DB, column, from, to string) (*gorm.DB, error) {
	start, err := parseDay("dateFrom", from)
	if err != nil {
		return nil, err
	}
	end, err := parseDay("dateTo", to)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, response.NewBadRequest("dateTo must not be before dateFrom")
	}
	if start != nil {
		query = query.Where(column+" >= ?", *start)
	}
	if end != nil {
		query = query.Where(column+" < ?", end.AddDate(0, 0, 1))
	}
	return query, nil
}

// applySearch adds a case-insensitive substring match over the given columns.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// notFound maps a missing row to a NotFoundError and passes other errors through.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFound(what + " not found")
	}
	return err
}

// conflict maps a unique-key violation to a ConflictError.
func conflict(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.NewConflict(msg)
	}
	return err
}
