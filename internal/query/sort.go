package query

import (
	"fmt"
	"strings"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// sortFields maps accepted sort names (lower-cased) to store columns.
// Both the client's camelCase names and the column names are accepted.
var sortFields = map[string]string{
	"id":            store.ColumnID,
	"title":         store.ColumnTitle,
	"category":      store.ColumnCategory,
	"status":        store.ColumnStatus,
	"duedate":       store.ColumnDueDate,
	"due_date":      store.ColumnDueDate,
	"createdat":     store.ColumnCreatedAt,
	"created_at":    store.ColumnCreatedAt,
	"updatedat":     store.ColumnUpdatedAt,
	"updated_at":    store.ColumnUpdatedAt,
	"istodaytask":   store.ColumnIsTodayTask,
	"is_today_task": store.ColumnIsTodayTask,
}

// ParseSort turns "<field> [ASC|DESC]" into an ORDER BY list. The
// direction defaults to ascending. Ties are always broken by id in the
// same direction. A blank key yields store.DefaultOrder.
func ParseSort(key string) ([]store.OrderBy, error) {
	parts := strings.Fields(key)
	if len(parts) == 0 {
		return append([]store.OrderBy(nil), store.DefaultOrder...), nil
	}
	if len(parts) > 2 {
		return nil, invalidSort(key)
	}

	column, ok := sortFields[strings.ToLower(parts[0])]
	if !ok {
		return nil, invalidSort(key)
	}

	desc := false
	if len(parts) == 2 {
		switch strings.ToUpper(parts[1]) {
		case "ASC":
		case "DESC":
			desc = true
		default:
			return nil, invalidSort(key)
		}
	}

	order := []store.OrderBy{{Column: column, Desc: desc}}
	if column != store.ColumnID {
		order = append(order, store.OrderBy{Column: store.ColumnID, Desc: desc})
	}
	return order, nil
}

func invalidSort(key string) error {
	return domain.NewValidationError(
		"orderBy",
		fmt.Sprintf("unsupported sort %q; use \"<field> ASC|DESC\" with a known field", key),
		nil,
	)
}
