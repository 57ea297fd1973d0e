package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateIn(t *testing.T) {
	t.Parallel()
	shanghai := time.FixedZone("GMT+8", 8*60*60)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain date", "2024-03-05", "2024-03-05"},
		{"utc evening rolls into next day", "2024-03-05T17:30:00Z", "2024-03-06"},
		{"utc morning stays", "2024-03-05T01:00:00Z", "2024-03-05"},
		{"offset timestamp", "2024-03-05T23:00:00+08:00", "2024-03-05"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d, err := ParseDateIn(tc.input, shanghai)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.String())
		})
	}

	_, err := ParseDateIn("05/03/2024", shanghai)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()
	d := NewDate(2024, 12, 31)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-31"`, string(b))

	var out Date
	require.Error(t, json.Unmarshal([]byte(`"31-12-2024"`), &out))
	require.Error(t, json.Unmarshal([]byte(`20241231`), &out))
}

func TestDate_Scan(t *testing.T) {
	t.Parallel()
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-02-29", d.String())

	require.NoError(t, d.Scan("2024-01-02"))
	assert.Equal(t, "2024-01-02", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-03 00:00:00+00:00")))
	assert.Equal(t, "2024-01-03", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2024, 1, 2).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", v)
}

func TestDate_Ordering(t *testing.T) {
	t.Parallel()
	a := NewDate(2024, 1, 1)
	b := NewDate(2024, 1, 2)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
}
