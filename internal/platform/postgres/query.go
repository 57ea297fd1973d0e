package postgres

import (
	"fmt"
	"strings"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// sqlBuilder accumulates WHERE predicates with numbered placeholders.
type sqlBuilder struct {
	where []string
	args  []any
}

// arg appends v and returns its placeholder.
func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *sqlBuilder) predicate(format string, v any) {
	b.where = append(b.where, fmt.Sprintf(format, b.arg(v)))
}

func (b *sqlBuilder) whereClause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

// placeholders appends ids and returns "$i, $j, ...".
func (b *sqlBuilder) placeholders(ids []int64) string {
	ph := make([]string, len(ids))
	for i, id := range ids {
		ph[i] = b.arg(id)
	}
	return strings.Join(ph, ", ")
}

func buildTaskFilter(filter store.TaskFilter, todayOnly bool) *sqlBuilder {
	b := &sqlBuilder{}
	if filter.TitlePattern != "" {
		b.predicate(`title ILIKE %s ESCAPE '\'`, filter.TitlePattern)
	}
	if filter.Category != nil {
		b.predicate("category = %s", *filter.Category)
	}
	if filter.Status != nil {
		b.predicate("status = %s", filter.Status.String())
	}
	if filter.DueFrom != nil {
		b.predicate("due_date >= %s", filter.DueFrom.String())
	}
	if filter.DueTo != nil {
		b.predicate("due_date <= %s", filter.DueTo.String())
	}
	if todayOnly {
		b.where = append(b.where, "is_today_task = TRUE")
	}
	return b
}

// orderClause renders an ORDER BY clause from allow-listed columns only.
func orderClause(order []store.OrderBy) (string, error) {
	if len(order) == 0 {
		order = store.DefaultOrder
	}
	terms := make([]string, 0, len(order))
	for _, o := range order {
		if !store.IsSortableColumn(o.Column) {
			return "", fmt.Errorf("%w: %q", store.ErrInvalidSort, o.Column)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms = append(terms, o.Column+" "+dir)
	}
	return " ORDER BY " + strings.Join(terms, ", "), nil
}

func nullableDate(d *domain.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.String()
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
