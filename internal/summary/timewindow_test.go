package summary

import (
	"testing"
	"time"

	summaryerrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/summary/errors"

	"github.com/stretchr/testify/assert"
)

func TestResolveWindow_Default(t *testing.T) {
	w, err := resolveWindow(SummaryRequest{})
	assert.NoError(t, err)
	assert.Equal(t, modeDefault, w.mode)
	assert.Empty(t, w.months)
}

func TestResolveWindow_MonthsRequireYear(t *testing.T) {
	_, err := resolveWindow(SummaryRequest{SelectedMonths: []string{"03"}})
	assert.ErrorIs(t, err, summaryerrors.ErrMissingYear)

	_, err = resolveWindow(SummaryRequest{SelectedQuarters: []string{"Q1"}})
	assert.ErrorIs(t, err, summaryerrors.ErrMissingYear)
}

func TestResolveWindow_Months(t *testing.T) {
	w, err := resolveWindow(SummaryRequest{
		SelectedYear:   "2025",
		SelectedMonths: []string{"01", "3"},
	})
	assert.NoError(t, err)
	assert.Equal(t, modeMonths, w.mode)
	assert.Equal(t, []string{"2025-01", "2025-03"}, w.periods)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), w.months[1])
}

func TestResolveWindow_InvalidMonth(t *testing.T) {
	_, err := resolveWindow(SummaryRequest{
		SelectedYear:   "2025",
		SelectedMonths: []string{"13"},
	})
	assert.ErrorIs(t, err, summaryerrors.ErrInvalidMonth)
}

func TestResolveWindow_YearValidation(t *testing.T) {
	_, err := resolveWindow(SummaryRequest{
		SelectedYear:   "0",
		SelectedMonths: []string{"01"},
	})
	assert.ErrorIs(t, err, summaryerrors.ErrYearNotPositive)

	_, err = resolveWindow(SummaryRequest{
		SelectedYear:   "2999",
		SelectedMonths: []string{"01"},
	})
	assert.ErrorIs(t, err, summaryerrors.ErrYearInFuture)
}

func TestResolveWindow_QuarterLabel(t *testing.T) {
	w, err := resolveWindow(SummaryRequest{
		SelectedYear:     "2025",
		SelectedQuarters: []string{"q1", "Q3"},
	})
	assert.NoError(t, err)
	assert.Equal(t, modeQuarters, w.mode)
	assert.Equal(t, []string{"2025-01 - 2025-03", "2025-07 - 2025-09"}, w.periods)
	assert.Len(t, w.allMonths(), 6)

	// Bulan di dalam quarter dipetakan ke label gabungan
	assert.Equal(t, "2025-01 - 2025-03",
		w.periodLabelFor(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "",
		w.periodLabelFor(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestResolveWindow_InvalidQuarter(t *testing.T) {
	_, err := resolveWindow(SummaryRequest{
		SelectedYear:     "2025",
		SelectedQuarters: []string{"Q5"},
	})
	assert.ErrorIs(t, err, summaryerrors.ErrInvalidQuarter)
}

func TestResolveWindow_Range(t *testing.T) {
	w, err := resolveWindow(SummaryRequest{StartMonth: "2025-01", EndMonth: "2025-03"})
	assert.NoError(t, err)
	assert.Equal(t, modeRange, w.mode)
	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03"}, w.periods)
}

func TestResolveWindow_RangeBeatsOtherFilters(t *testing.T) {
	w, err := resolveWindow(SummaryRequest{
		SelectedYear:   "2024",
		SelectedMonths: []string{"06"},
		StartMonth:     "2025-02",
		EndMonth:       "2025-02",
	})
	assert.NoError(t, err)
	assert.Equal(t, modeRange, w.mode)
	assert.Equal(t, []string{"2025-02"}, w.periods)
}

func TestResolveWindow_HalfRangeRejected(t *testing.T) {
	// Satu ujung range saja bukan fallback ke bulan terbaru
	_, err := resolveWindow(SummaryRequest{StartMonth: "2025-01"})
	assert.ErrorIs(t, err, summaryerrors.ErrNoDateFilter)

	_, err = resolveWindow(SummaryRequest{EndMonth: "2025-03"})
	assert.ErrorIs(t, err, summaryerrors.ErrNoDateFilter)
}

func TestResolveWindow_InvalidRange(t *testing.T) {
	_, err := resolveWindow(SummaryRequest{StartMonth: "2025-05", EndMonth: "2025-01"})
	assert.ErrorIs(t, err, summaryerrors.ErrInvalidRange)

	_, err = resolveWindow(SummaryRequest{StartMonth: "2025/05", EndMonth: "2025-06"})
	assert.ErrorIs(t, err, summaryerrors.ErrInvalidMonthFormat)
}
