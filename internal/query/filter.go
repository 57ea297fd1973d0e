package query

import (
	"strings"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Page size bounds used when a Compiler is built without options.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TaskQuery is the raw listing request as the client sends it. Every field
// is optional.
type TaskQuery struct {
	Current   int    `json:"current"`
	PageSize  int    `json:"pageSize"`
	TaskName  string `json:"taskName"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	OrderBy   string `json:"orderBy"`
}

// Compiled is a normalized query: clamped paging plus store predicates.
type Compiled struct {
	Page     int
	PageSize int
	Filter   store.TaskFilter
}

// Compiler normalizes TaskQuery values. It is immutable and safe for
// concurrent use.
type Compiler struct {
	location        *time.Location
	defaultPageSize int
	maxPageSize     int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLocation sets the zone in which timestamp bounds are converted to days.
func WithLocation(loc *time.Location) Option {
	return func(c *Compiler) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithPageSizes sets the default and maximum page sizes. Non-positive
// values keep the package defaults.
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(c *Compiler) {
		if defaultSize > 0 {
			c.defaultPageSize = defaultSize
		}
		if maxSize > 0 {
			c.maxPageSize = maxSize
		}
	}
}

// NewCompiler creates a Compiler. Without options it uses UTC and the
// package page-size defaults.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		location:        time.UTC,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.defaultPageSize > c.maxPageSize {
		c.defaultPageSize = c.maxPageSize
	}
	return c
}

// Location returns the zone used for day conversion.
func (c *Compiler) Location() *time.Location {
	return c.location
}

// Compile validates q and converts it into store predicates.
func (c *Compiler) Compile(q TaskQuery) (Compiled, error) {
	out := Compiled{
		Page:     q.Current,
		PageSize: q.PageSize,
	}
	if out.Page < 1 {
		out.Page = 1
	}
	switch {
	case out.PageSize < 1:
		out.PageSize = c.defaultPageSize
	case out.PageSize > c.maxPageSize:
		out.PageSize = c.maxPageSize
	}

	out.Filter.TitlePattern = ContainsPattern(q.TaskName)
	out.Filter.Category = domain.TrimToNil(&q.Category)

	if s := strings.TrimSpace(q.Status); s != "" {
		status, err := domain.ParseStatus(s)
		if err != nil {
			return Compiled{}, err
		}
		out.Filter.Status = &status
	}

	from, err := c.parseBound("startDate", q.StartDate)
	if err != nil {
		return Compiled{}, err
	}
	to, err := c.parseBound("endDate", q.EndDate)
	if err != nil {
		return Compiled{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return Compiled{}, domain.NewValidationError("startDate", "startDate must not be after endDate", nil)
	}
	out.Filter.DueFrom, out.Filter.DueTo = from, to

	order, err := ParseSort(q.OrderBy)
	if err != nil {
		return Compiled{}, err
	}
	out.Filter.OrderBy = order

	return out, nil
}

func (c *Compiler) parseBound(field, raw string) (*domain.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := domain.ParseDateIn(raw, c.location)
	if err != nil {
		return nil, domain.NewValidationError(field, field+" must be a date (2006-01-02) or RFC3339 timestamp", err)
	}
	return &d, nil
}
