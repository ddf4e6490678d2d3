package expense_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodia/internal/expense"
)

func TestParseDate(t *testing.T) {
	d, err := expense.ParseDate("2024-03-09")
	require.NoError(t, err)

	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, time.March, d.Month)
	assert.Equal(t, 9, d.Day)
	assert.Equal(t, "2024-03-09", d.String())

	_, err = expense.ParseDate("09/03/2024")
	assert.Error(t, err)

	_, err = expense.ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestDate_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b expense.Date
		want int
	}{
		{
			name: "Equal",
			a:    expense.Date{Year: 2024, Month: time.May, Day: 1},
			b:    expense.Date{Year: 2024, Month: time.May, Day: 1},
			want: 0,
		},
		{
			name: "YearWins",
			a:    expense.Date{Year: 2023, Month: time.December, Day: 31},
			b:    expense.Date{Year: 2024, Month: time.January, Day: 1},
			want: -1,
		},
		{
			name: "MonthWins",
			a:    expense.Date{Year: 2024, Month: time.June, Day: 1},
			b:    expense.Date{Year: 2024, Month: time.May, Day: 31},
			want: 1,
		},
		{
			name: "DayDecides",
			a:    expense.Date{Year: 2024, Month: time.May, Day: 2},
			b:    expense.Date{Year: 2024, Month: time.May, Day: 10},
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
			assert.Equal(t, tt.want < 0, tt.a.Before(tt.b))
			assert.Equal(t, tt.want > 0, tt.a.After(tt.b))
		})
	}
}

func TestDate_NoTimezoneShift(t *testing.T) {
	// The calendar day must survive regardless of the location the
	// source instant was expressed in.
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	late := time.Date(2024, time.January, 15, 23, 30, 0, 0, loc)
	d := expense.DateOf(late)

	assert.Equal(t, "2024-01-15", d.String())
	assert.Equal(t, "2024-01", d.MonthKey())
}

func TestDate_JSON(t *testing.T) {
	d := expense.Date{Year: 2024, Month: time.November, Day: 3}

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-11-03"`, string(b))

	var got expense.Date
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, d, got)

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &got))
}

func TestDate_IsZero(t *testing.T) {
	assert.True(t, expense.Date{}.IsZero())
	assert.False(t, expense.Date{Year: 2024, Month: time.January, Day: 1}.IsZero())
}
