package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvStatsRendererImpl_RenderReport(t *testing.T) {
	startDate := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	days := make([]DailyFocus, 0, 7)
	total := 0
	for i := 0; i < 7; i++ {
		minutes := i * 10
		days = append(days, DailyFocus{Date: startDate.AddDate(0, 0, i), Minutes: minutes})
		total += minutes
	}
	report := WeeklyReport{
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, 6),
		Days:          days,
		WeeklyMinutes: total,
	}

	renderer := NewCsvStatsRenderer()
	csv, err := renderer.RenderReport(report)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	// Header, one row per day, total row.
	require.Len(t, lines, 9)
	assert.Equal(t, "Date,Minutes", lines[0])
	assert.Equal(t, "06/01/2025,0", lines[1])
	assert.Equal(t, "08/01/2025,20", lines[3])
	assert.Equal(t, "12/01/2025,60", lines[7])
	assert.Equal(t, "Total,210", lines[8])
}

func TestCsvStatsRendererImpl_RenderReport_EmptyWindow(t *testing.T) {
	renderer := NewCsvStatsRenderer()
	csv, err := renderer.RenderReport(WeeklyReport{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Minutes", lines[0])
	assert.Equal(t, "Total,0", lines[1])
}
