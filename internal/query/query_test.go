package query

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		page, size int
		total      int64
		offset     int
		empty      bool
	}{
		{1, 10, 25, 0, false},
		{2, 10, 25, 10, false},
		{3, 10, 25, 20, false},
		{5, 7, 100, 28, false},
		{1, 10, 0, 0, true},
	}
	for _, tc := range tests {
		p := Paginate(tc.page, tc.size, tc.total)
		assert.Equal(t, tc.offset, p.Offset())
		assert.Equal(t, tc.empty, p.Empty())
		assert.Equal(t, store.Window{Offset: tc.offset, Limit: tc.size}, p.Window())
	}
}

func TestPages(t *testing.T) {
	t.Parallel()

	empty := EmptyPage[string](3, 20)
	assert.Equal(t, int64(0), empty.Total)
	assert.NotNil(t, empty.List)
	assert.Empty(t, empty.List)

	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":3,"pageSize":20,"total":0,"list":[]}`, string(b))

	page := NewPage[int](Paginate(2, 2, 5), nil)
	assert.Equal(t, 2, page.Current)
	assert.Equal(t, int64(5), page.Total)
	assert.NotNil(t, page.List)
}

func TestContainsPattern(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", ContainsPattern("   "))
	assert.Equal(t, "%report%", ContainsPattern(" report "))
	assert.Equal(t, `%50\%\_off\\%`, ContainsPattern(`50%_off\`))
}

func TestParseSort(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key  string
		want []store.OrderBy
	}{
		{"", store.DefaultOrder},
		{"dueDate ASC", []store.OrderBy{{Column: "due_date"}, {Column: "id"}}},
		{"dueDate DESC", []store.OrderBy{{Column: "due_date", Desc: true}, {Column: "id", Desc: true}}},
		{"created_at desc", []store.OrderBy{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}}},
		{"title", []store.OrderBy{{Column: "title"}, {Column: "id"}}},
		{"id DESC", []store.OrderBy{{Column: "id", Desc: true}}},
	}
	for _, tc := range tests {
		got, err := ParseSort(tc.key)
		require.NoError(t, err, tc.key)
		assert.Equal(t, tc.want, got, tc.key)
	}

	for _, bad := range []string{
		"password_hash ASC",
		"dueDate SIDEWAYS",
		"dueDate ASC; DROP TABLE tasks",
		"created_at DESC, id",
		"1",
	} {
		_, err := ParseSort(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestParseSortDoesNotAliasDefault(t *testing.T) {
	t.Parallel()
	got, err := ParseSort("")
	require.NoError(t, err)
	got[0].Column = "mutated"
	assert.Equal(t, store.ColumnCreatedAt, store.DefaultOrder[0].Column)
}

func TestCompiler_Compile(t *testing.T) {
	t.Parallel()
	shanghai := time.FixedZone("GMT+8", 8*60*60)
	c := NewCompiler(WithLocation(shanghai), WithPageSizes(10, 100))

	t.Run("paging is clamped", func(t *testing.T) {
		t.Parallel()
		got, err := c.Compile(TaskQuery{Current: 0, PageSize: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 10, got.PageSize)

		got, err = c.Compile(TaskQuery{Current: -3, PageSize: 1000})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 100, got.PageSize)
	})

	t.Run("all predicates", func(t *testing.T) {
		t.Parallel()
		got, err := c.Compile(TaskQuery{
			Current:   2,
			PageSize:  5,
			TaskName:  " report ",
			Category:  " work ",
			Status:    "true",
			StartDate: "2024-03-01",
			EndDate:   "2024-03-31T20:00:00Z",
			OrderBy:   "dueDate DESC",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 5, got.PageSize)
		assert.Equal(t, "%report%", got.Filter.TitlePattern)
		require.NotNil(t, got.Filter.Category)
		assert.Equal(t, "work", *got.Filter.Category)
		require.NotNil(t, got.Filter.Status)
		assert.Equal(t, domain.StatusCompleted, *got.Filter.Status)
		assert.Equal(t, "2024-03-01", got.Filter.DueFrom.String())
		assert.Equal(t, "2024-04-01", got.Filter.DueTo.String(), "20:00Z is the next day in GMT+8")
		assert.Equal(t, store.ColumnDueDate, got.Filter.OrderBy[0].Column)
	})

	t.Run("blank fields are absent", func(t *testing.T) {
		t.Parallel()
		got, err := c.Compile(TaskQuery{TaskName: "  ", Category: " ", Status: " "})
		require.NoError(t, err)
		assert.Empty(t, got.Filter.TitlePattern)
		assert.Nil(t, got.Filter.Category)
		assert.Nil(t, got.Filter.Status)
		assert.Nil(t, got.Filter.DueFrom)
		assert.Nil(t, got.Filter.DueTo)
		assert.Equal(t, store.DefaultOrder, got.Filter.OrderBy)
	})

	t.Run("single bound", func(t *testing.T) {
		t.Parallel()
		got, err := c.Compile(TaskQuery{EndDate: "2024-01-31"})
		require.NoError(t, err)
		assert.Nil(t, got.Filter.DueFrom)
		assert.Equal(t, "2024-01-31", got.Filter.DueTo.String())
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()
		for name, q := range map[string]TaskQuery{
			"bad status":     {Status: "done"},
			"bad start":      {StartDate: "yesterday"},
			"bad end":        {EndDate: "2024/01/01"},
			"inverted range": {StartDate: "2024-02-01", EndDate: "2024-01-01"},
			"bad sort":       {OrderBy: "secret ASC"},
		} {
			_, err := c.Compile(q)
			assert.ErrorIs(t, err, domain.ErrValidation, name)
		}
	})
}

func TestNewCompilerDefaults(t *testing.T) {
	t.Parallel()
	c := NewCompiler(WithPageSizes(500, 50), WithLocation(nil))
	assert.Equal(t, time.UTC, c.Location())

	got, err := c.Compile(TaskQuery{})
	require.NoError(t, err)
	assert.Equal(t, 50, got.PageSize, "default is capped by max")
}
