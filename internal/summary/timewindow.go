package summary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	summaryerrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/summary/errors"
)

const monthLayout = "2006-01"

// windowMode menentukan semantik "tidak ada data" per §resolveWindow:
// mode range strict (bulan kosong manapun menggagalkan request),
// mode list/quarter lenient (periode kosong tetap dilaporkan sebagai marker).
type windowMode int

const (
	modeDefault windowMode = iota
	modeMonths
	modeQuarters
	modeRange
)

// timeWindow adalah hasil resolve filter waktu menjadi bulan konkret.
// Untuk mode quarter, periods berisi label gabungan "YYYY-MM - YYYY-MM"
// dan periodMonths memetakan label ke bulan penyusunnya.
type timeWindow struct {
	mode         windowMode
	months       []time.Time
	periods      []string
	periodMonths map[string][]time.Time
}

// periodLabelFor mengembalikan label periode untuk satu bulan fakta,
// atau "" jika bulan tersebut tidak diminta.
func (w *timeWindow) periodLabelFor(month time.Time) string {
	month = truncateMonth(month)
	if w.mode == modeQuarters {
		for _, label := range w.periods {
			for _, m := range w.periodMonths[label] {
				if m.Equal(month) {
					return label
				}
			}
		}
		return ""
	}

	label := month.Format(monthLayout)
	for _, p := range w.periods {
		if p == label {
			return label
		}
	}
	return ""
}

func (w *timeWindow) allMonths() []time.Time {
	if w.mode != modeQuarters {
		return w.months
	}
	var all []time.Time
	for _, label := range w.periods {
		all = append(all, w.periodMonths[label]...)
	}
	return all
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func parseYYYYMM(value string) (time.Time, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, summaryerrors.ErrInvalidMonthFormat
	}
	return truncateMonth(t), nil
}

func validateYear(year int) error {
	if year <= 0 {
		return summaryerrors.ErrYearNotPositive
	}
	if year > time.Now().Year() {
		return summaryerrors.ErrYearInFuture
	}
	return nil
}

func quarterToMonths(q string) ([]int, error) {
	switch strings.ToUpper(strings.TrimSpace(q)) {
	case "Q1":
		return []int{1, 2, 3}, nil
	case "Q2":
		return []int{4, 5, 6}, nil
	case "Q3":
		return []int{7, 8, 9}, nil
	case "Q4":
		return []int{10, 11, 12}, nil
	default:
		return nil, summaryerrors.ErrInvalidQuarter
	}
}

func monthRange(start, end time.Time) ([]time.Time, error) {
	if start.After(end) {
		return nil, summaryerrors.ErrInvalidRange
	}

	var months []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		months = append(months, cur)
	}
	return months, nil
}

// resolveWindow menerjemahkan filter waktu request menjadi timeWindow.
// Prioritas mengikuti perilaku lama: range > selected_months > selected_quarters.
// Jika tidak ada filter sama sekali, caller yang memutuskan fallback
// ke bulan terbaru (mode default).
func resolveWindow(req SummaryRequest) (*timeWindow, error) {
	hasMonths := len(req.SelectedMonths) > 0
	hasQuarters := len(req.SelectedQuarters) > 0
	hasStart := req.StartMonth != ""
	hasEnd := req.EndMonth != ""
	hasRange := hasStart && hasEnd

	// Range setengah jadi bukan fallback ke default, itu request yang salah
	if hasStart != hasEnd {
		return nil, summaryerrors.ErrNoDateFilter
	}

	if (hasMonths || hasQuarters) && req.SelectedYear == "" {
		return nil, summaryerrors.ErrMissingYear
	}

	switch {
	case hasRange:
		start, err := parseYYYYMM(req.StartMonth)
		if err != nil {
			return nil, err
		}
		end, err := parseYYYYMM(req.EndMonth)
		if err != nil {
			return nil, err
		}
		months, err := monthRange(start, end)
		if err != nil {
			return nil, err
		}

		w := &timeWindow{mode: modeRange, months: months}
		for _, m := range months {
			w.periods = append(w.periods, m.Format(monthLayout))
		}
		return w, nil

	case hasMonths:
		year, err := parseYear(req.SelectedYear)
		if err != nil {
			return nil, err
		}

		w := &timeWindow{mode: modeMonths}
		for _, raw := range req.SelectedMonths {
			m, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || m < 1 || m > 12 {
				return nil, summaryerrors.ErrInvalidMonth
			}
			month := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
			w.months = append(w.months, month)
			w.periods = append(w.periods, month.Format(monthLayout))
		}
		return w, nil

	case hasQuarters:
		year, err := parseYear(req.SelectedYear)
		if err != nil {
			return nil, err
		}

		w := &timeWindow{mode: modeQuarters, periodMonths: map[string][]time.Time{}}
		for _, q := range req.SelectedQuarters {
			monthNums, err := quarterToMonths(q)
			if err != nil {
				return nil, err
			}

			var months []time.Time
			for _, m := range monthNums {
				months = append(months, time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC))
			}

			label := fmt.Sprintf("%s - %s",
				months[0].Format(monthLayout),
				months[len(months)-1].Format(monthLayout),
			)
			w.periods = append(w.periods, label)
			w.periodMonths[label] = months
		}
		return w, nil
	}

	return &timeWindow{mode: modeDefault}, nil
}

func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, summaryerrors.ErrYearNotPositive
	}
	if err := validateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}
