package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rng(y1 int, m1 time.Month, d1, y2 int, m2 time.Month, d2 int) DateRange {
	return DateRange{Start: NewDate(y1, m1, d1), End: NewDate(y2, m2, d2)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want bool
	}{
		{
			name: "contained range overlaps",
			a:    rng(2024, 2, 1, 2024, 2, 5),
			b:    rng(2024, 2, 3, 2024, 2, 4),
			want: true,
		},
		{
			name: "shared boundary day counts as overlap",
			a:    rng(2024, 1, 10, 2024, 1, 10),
			b:    rng(2024, 1, 10, 2024, 1, 12),
			want: true,
		},
		{
			name: "adjacent ranges do not overlap",
			a:    rng(2024, 1, 1, 2024, 1, 5),
			b:    rng(2024, 1, 6, 2024, 1, 10),
			want: false,
		},
		{
			name: "single-day range inside multi-day range",
			a:    rng(2024, 3, 11, 2024, 3, 11),
			b:    rng(2024, 3, 10, 2024, 3, 12),
			want: true,
		},
		{
			name: "two identical single-day ranges",
			a:    rng(2024, 5, 1, 2024, 5, 1),
			b:    rng(2024, 5, 1, 2024, 5, 1),
			want: true,
		},
		{
			name: "disjoint by months",
			a:    rng(2024, 1, 1, 2024, 1, 31),
			b:    rng(2024, 3, 1, 2024, 3, 31),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestDateRangeValid(t *testing.T) {
	assert.True(t, rng(2024, 1, 1, 2024, 1, 1).Valid())
	assert.True(t, rng(2024, 1, 1, 2024, 1, 2).Valid())
	assert.False(t, rng(2024, 1, 2, 2024, 1, 1).Valid())
}

func TestDateRangeDays(t *testing.T) {
	days := rng(2024, 4, 1, 2024, 4, 3).Days()
	assert.Len(t, days, 3)
	assert.Equal(t, "2024-04-01", days[0].String())
	assert.Equal(t, "2024-04-02", days[1].String())
	assert.Equal(t, "2024-04-03", days[2].String())

	single := rng(2024, 4, 1, 2024, 4, 1).Days()
	assert.Len(t, single, 1)

	// month boundary
	crossing := rng(2024, 1, 30, 2024, 2, 2).Days()
	assert.Len(t, crossing, 4)
	assert.Equal(t, "2024-02-01", crossing[2].String())

	assert.Nil(t, rng(2024, 1, 2, 2024, 1, 1).Days())
}

func TestDateRangeClamp(t *testing.T) {
	window := rng(2024, 4, 1, 2024, 4, 30)
	clamped := rng(2024, 3, 28, 2024, 4, 3).Clamp(window)
	assert.Equal(t, "2024-04-01", clamped.Start.String())
	assert.Equal(t, "2024-04-03", clamped.End.String())

	inside := rng(2024, 4, 10, 2024, 4, 12).Clamp(window)
	assert.Equal(t, "2024-04-10", inside.Start.String())
	assert.Equal(t, "2024-04-12", inside.End.String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Day Date `json:"day"`
	}

	var p payload
	assert.NoError(t, json.Unmarshal([]byte(`{"day":"2024-04-01"}`), &p))
	assert.Equal(t, "2024-04-01", p.Day.String())

	out, err := json.Marshal(p)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"day":"2024-04-01"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"day":"01-04-2024"}`), &p))
}
