package pagination

import (
	"math"
	"strconv"

	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params are the page/limit query parameters shared by every list endpoint.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// FromQuery reads page and limit, ignoring values that are not integers.
func FromQuery(page, limit string) Params {
	var p Params
	if page != "" {
		if v, err := strconv.Atoi(page); err == nil {
			p.Page = v
		}
	}
	if limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			p.Limit = v
		}
	}
	return p
}

// Normalize fills defaults and appends field errors for out-of-range values.
func (p *Params) Normalize(errs *validator.ValidationErrors) {
	if p.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if p.Page == 0 {
		p.Page = DefaultPage
	}

	if p.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		errs.Add("limit", "limit must not exceed 100")
	}
}

func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// List is the data payload of every paginated endpoint.
type List[T any] struct {
	Items      []T  `json:"items"`
	Pagination Meta `json:"pagination"`
}

func NewList[T any](items []T, p Params, total int64) List[T] {
	if items == nil {
		items = []T{}
	}
	return List[T]{Items: items, Pagination: NewMeta(p, total)}
}
