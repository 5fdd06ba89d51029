package allowance

// ShiftDetail adalah satu mapping shift dalam response display
type ShiftDetail struct {
	ShiftType string  `json:"shift_type"`
	Days      float64 `json:"days"`
}

type RecordResponse struct {
	ID                uint          `json:"id"`
	EmpID             string        `json:"emp_id"`
	EmpName           string        `json:"emp_name"`
	Grade             string        `json:"grade"`
	Department        string        `json:"department"`
	Client            string        `json:"client"`
	Project           string        `json:"project"`
	ProjectCode       string        `json:"project_code"`
	AccountManager    string        `json:"account_manager"`
	DeliveryManager   string        `json:"delivery_manager"`
	PracticeLead      string        `json:"practice_lead"`
	BillabilityStatus string        `json:"billability_status"`
	PracticeRemarks   string        `json:"practice_remarks"`
	RmgComments       string        `json:"rmg_comments"`
	DurationMonth     string        `json:"duration_month"`
	PayrollMonth      string        `json:"payroll_month"`
	Shifts            []ShiftDetail `json:"shifts"`
}

type PaginatedRecordsResponse struct {
	TotalRecords int64            `json:"total_records"`
	Data         []RecordResponse `json:"data"`
}
