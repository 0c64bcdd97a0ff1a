package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

// FromQuery reads ?page= and ?page_size=, clamping invalid values to defaults
func FromQuery(c *gin.Context) Page {
	return New(c.Query("page"), c.Query("page_size"))
}

func New(number, size string) Page {
	p := Page{Number: 1, Size: DefaultPageSize}

	if n, err := strconv.Atoi(number); err == nil && n > 0 {
		p.Number = n
	}
	if s, err := strconv.Atoi(size); err == nil && s > 0 {
		p.Size = min(s, MaxPageSize)
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Scope applies LIMIT/OFFSET for the page
func (p Page) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Size)
	}
}

// Result is the list envelope returned by every collection endpoint
type Result[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

func NewResult[T any](page Page, count int64, results []T) Result[T] {
	if results == nil {
		results = []T{}
	}
	return Result[T]{
		Count:    count,
		Page:     page.Number,
		PageSize: page.Size,
		Results:  results,
	}
}

// Ordering maps public ordering fields to columns.
type Ordering struct {
	fields   map[string]string
	fallback string
}

// NewOrdering builds an ordering whitelist. fallback is a full ORDER BY clause.
func NewOrdering(fallback string, fields map[string]string) Ordering {
	return Ordering{fields: fields, fallback: fallback}
}

// Clause turns "?ordering=-title,category" into an ORDER BY clause.
// Unknown fields are ignored; if nothing remains the fallback is used.
func (o Ordering) Clause(param string) string {
	var parts []string
	for _, raw := range strings.Split(param, ",") {
		field := strings.TrimSpace(raw)
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")

		column, ok := o.fields[field]
		if !ok {
			continue
		}
		if desc {
			parts = append(parts, column+" DESC")
		} else {
			parts = append(parts, column+" ASC")
		}
	}

	if len(parts) == 0 {
		return o.fallback
	}
	return strings.Join(parts, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// LikePattern wraps a search term for a case-insensitive LIKE against LOWER(column).
// Wildcards in the term match literally; pair it with Like.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// Like builds "<expr> LIKE ? ESCAPE '\'" for a pattern from LikePattern
func Like(expr string) string {
	return expr + ` LIKE ? ESCAPE '\'`
}

// TieBreak appends column to an ORDER BY clause in the direction of its first
// term, unless the clause already orders by column.
func TieBreak(orderBy, column string) string {
	if strings.TrimSpace(orderBy) == "" {
		return column + " ASC"
	}
	for _, part := range strings.Split(orderBy, ",") {
		if fields := strings.Fields(part); len(fields) > 0 && fields[0] == column {
			return orderBy
		}
	}
	direction := "ASC"
	if first := strings.Fields(strings.Split(orderBy, ",")[0]); len(first) > 1 {
		direction = strings.ToUpper(first[1])
	}
	return orderBy + ", " + column + " " + direction
}
