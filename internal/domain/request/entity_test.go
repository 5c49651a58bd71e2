package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityEntryHours(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"regular shift", "08:00", "17:00", 9},
		{"half hour", "09:00", "09:30", 0.5},
		{"overnight wrap", "22:00", "06:00", 8},
		{"just before midnight", "23:30", "00:30", 1},
		{"same time counts as zero", "08:00", "08:00", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entry := ActivityEntry{Date: "2024-03-01", StartTime: c.start, EndTime: c.end}
			hours, err := entry.Hours()
			require.NoError(t, err)
			assert.InDelta(t, c.want, hours, 0.001)
		})
	}
}

func TestActivityEntryHoursInvalidClock(t *testing.T) {
	entry := ActivityEntry{StartTime: "25:00", EndTime: "08:00"}
	_, err := entry.Hours()
	assert.Error(t, err)
}

func TestActivityEntriesTotalHours(t *testing.T) {
	entries := ActivityEntries{
		{Date: "2024-03-01", StartTime: "08:00", EndTime: "18:00"}, // 10h
		{Date: "2024-03-02", StartTime: "20:00", EndTime: "06:00"}, // 10h overnight
	}
	total, err := entries.TotalHours()
	require.NoError(t, err)
	assert.InDelta(t, 20.0, total, 0.001)
}

func TestInclusiveDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	assert.Equal(t, 1, InclusiveDays(day("2024-01-01"), day("2024-01-01")))
	assert.Equal(t, 5, InclusiveDays(day("2024-01-01"), day("2024-01-05")))
	assert.Equal(t, 2, InclusiveDays(day("2024-12-31"), day("2025-01-01")))
}

func TestCredit(t *testing.T) {
	cases := []struct {
		hours float64
		want  int
	}{
		{0, 0},
		{7.9, 0},
		{8, 1},
		{15.5, 1},
		{16, 2},
		{20, 2},
		{-4, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Credit(c.hours), "Credit(%v)", c.hours)
	}
}
