package summary

import (
	"encoding/json"

	summaryerrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/summary/errors"
)

// ClientSelector menerima payload "clients": null, sentinel "ALL",
// atau mapping {client: [departments]}. Allow-list department kosong
// berarti semua department client tersebut lolos filter.
type ClientSelector struct {
	provided bool
	all      bool
	clients  map[string][]string
}

// AllClients adalah sentinel eksplisit "ALL"
func AllClients() ClientSelector {
	return ClientSelector{provided: true, all: true}
}

// ClientsOf membentuk selector dari mapping client → departments (untuk test)
func ClientsOf(clients map[string][]string) ClientSelector {
	return ClientSelector{provided: true, clients: clients}
}

// IsRestricted melaporkan apakah selector membatasi client tertentu
func (s ClientSelector) IsRestricted() bool {
	return s.provided && !s.all && len(s.clients) > 0
}

// Clients mengembalikan mapping mentahnya (nil bila tidak dibatasi)
func (s ClientSelector) Clients() map[string][]string {
	if !s.IsRestricted() {
		return nil
	}
	return s.clients
}

func (s *ClientSelector) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString == "ALL" {
			*s = AllClients()
			return nil
		}
		return summaryerrors.ErrInvalidClients
	}

	var asNull *struct{}
	if err := json.Unmarshal(data, &asNull); err == nil && asNull == nil && string(data) == "null" {
		*s = ClientSelector{}
		return nil
	}

	var asMap map[string][]string
	if err := json.Unmarshal(data, &asMap); err == nil {
		*s = ClientSelector{provided: true, clients: asMap}
		return nil
	}

	return summaryerrors.ErrInvalidClients
}

func (s ClientSelector) MarshalJSON() ([]byte, error) {
	switch {
	case !s.provided:
		return []byte("null"), nil
	case s.all:
		return json.Marshal("ALL")
	default:
		return json.Marshal(s.clients)
	}
}

// FlexString menerima string tunggal atau list (elemen pertama yang dipakai),
// mengikuti bentuk payload account_manager yang lama
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = FlexString(asString)
		return nil
	}

	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		if len(asList) > 0 {
			*f = FlexString(asList[0])
		} else {
			*f = ""
		}
		return nil
	}

	return json.Unmarshal(data, (*string)(f))
}

func (f FlexString) String() string { return string(f) }

// SummaryRequest adalah filter gabungan untuk aggregation engine dan export
type SummaryRequest struct {
	Clients          ClientSelector `json:"clients"`
	EmpID            string         `json:"emp_id"`
	AccountManager   FlexString     `json:"account_manager"`
	SelectedYear     string         `json:"selected_year"`
	SelectedMonths   []string       `json:"selected_months"`
	SelectedQuarters []string       `json:"selected_quarters"`
	StartMonth       string         `json:"start_month"`
	EndMonth         string         `json:"end_month"`
}

// IsDefault: request tanpa filter apapun (atau sentinel ALL) resolve ke
// bulan terbaru dan memenuhi syarat cache
func (r SummaryRequest) IsDefault() bool {
	return !r.Clients.IsRestricted() &&
		r.SelectedYear == "" &&
		len(r.SelectedMonths) == 0 &&
		len(r.SelectedQuarters) == 0 &&
		r.StartMonth == "" &&
		r.EndMonth == "" &&
		r.EmpID == "" &&
		r.AccountManager == ""
}

// ClientMonthSummary adalah satu record di endpoint client-shift-summary:
// rollup level client untuk satu payroll month
type ClientMonthSummary struct {
	Client         string  `json:"client"`
	HeadCount      int     `json:"head_count"`
	ShiftA         float64 `json:"A"`
	ShiftB         float64 `json:"B"`
	ShiftC         float64 `json:"C"`
	ShiftPrime     float64 `json:"PRIME"`
	TotalAllowance float64 `json:"total_allowance"`
}

type IntervalSummaryRequest struct {
	StartMonth string `form:"start_month" binding:"required"`
	EndMonth   string `form:"end_month" binding:"required"`
}
