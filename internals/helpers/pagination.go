// internals/helpers/pagination.go
package helper

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"quest4knowledge_backend/internals/apperr"
)

const defaultPage = 1

type PageOptions struct {
	DefaultPerPage int
	MaxPerPage     int
}

var AdminPageOpts = PageOptions{DefaultPerPage: 50, MaxPerPage: 500}

type PageParams struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc|desc
}

// ParsePage reads page/per_page/sort_by/order from the query string.
func ParsePage(c *fiber.Ctx, defaultSortBy string, opt PageOptions) PageParams {
	page := atoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = defaultPage
	}

	per := opt.DefaultPerPage
	if n, err := strconv.Atoi(c.Query("per_page")); err == nil && n > 0 {
		per = n
	}
	if per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}

	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	order := strings.ToLower(strings.TrimSpace(c.Query("order")))
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	return PageParams{Page: page, PerPage: per, SortBy: sortBy, SortOrder: order}
}

func (p PageParams) Limit() int  { return p.PerPage }
func (p PageParams) Offset() int { return (p.Page - 1) * p.PerPage }

// OrderClause maps the requested sort key through a column whitelist so
// user input never reaches the ORDER BY raw.
func (p PageParams) OrderClause(allowed map[string]string, defaultKey string) (string, error) {
	key := p.SortBy
	col, ok := allowed[key]
	if !ok {
		col, ok = allowed[defaultKey]
		if !ok {
			return "", apperr.Validation("unknown sort key %q", key)
		}
	}
	dir := "DESC"
	if p.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir, nil
}

type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func BuildPageMeta(total int64, p PageParams) PageMeta {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.PerPage)))
	}
	return PageMeta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    p.Page > 1,
		HasNext:    totalPages > 0 && p.Page < totalPages,
	}
}

// SuccessPaged is Success plus pagination meta.
func SuccessPaged(c *fiber.Ctx, message string, data interface{}, meta PageMeta) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":       fiber.StatusOK,
		"status":     "success",
		"message":    message,
		"data":       data,
		"pagination": meta,
	})
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
