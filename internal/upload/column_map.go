package upload

import (
	"fmt"
	"strings"
)

// Header spreadsheet eksternal sesuai template tim payroll, urutannya
// dipakai juga saat menulis error file
var expectedHeaders = []string{
	"Emp ID",
	"Emp Name",
	"Grade",
	"Department",
	"Client",
	"Project",
	"Project Code",
	"Account Manager",
	"Delivery Manager",
	"Practice Lead",
	"Billability Status",
	"Practice Remarks",
	"RMG Comments",
	"Month - Year",
	"Payroll Month",
	"Shift A Days",
	"Shift B Days",
	"Shift C Days",
	"Prime Days",
	"Total Days",
}

// Kolom yang wajib numeric; kosong dianggap 0
var numericHeaders = []string{
	"Shift A Days",
	"Shift B Days",
	"Shift C Days",
	"Prime Days",
	"Total Days",
}

const (
	colEmpID             = "Emp ID"
	colEmpName           = "Emp Name"
	colGrade             = "Grade"
	colDepartment        = "Department"
	colClient            = "Client"
	colProject           = "Project"
	colProjectCode       = "Project Code"
	colAccountManager    = "Account Manager"
	colDeliveryManager   = "Delivery Manager"
	colPracticeLead      = "Practice Lead"
	colBillability       = "Billability Status"
	colPracticeRemarks   = "Practice Remarks"
	colRmgComments       = "RMG Comments"
	colDurationMonth     = "Month - Year"
	colPayrollMonth      = "Payroll Month"
	colShiftADays        = "Shift A Days"
	colShiftBDays        = "Shift B Days"
	colShiftCDays        = "Shift C Days"
	colPrimeDays         = "Prime Days"
	colTotalDays         = "Total Days"
	errorReasonHeader    = "Error Reason"
	errorFileNamePattern = "error_%s.xlsx"
)

// checkHeaders mencari kolom template yang tidak ada di baris header file.
// Pencocokan case-insensitive dan mengabaikan spasi pinggir; kolom di luar
// template dibiarkan saja, headerIndex memang hanya memetakan kolom template.
func checkHeaders(got []string) (missing []string) {
	normalize := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

	seen := map[string]bool{}
	for _, h := range got {
		seen[normalize(h)] = true
	}

	for _, h := range expectedHeaders {
		if !seen[normalize(h)] {
			missing = append(missing, h)
		}
	}

	return missing
}

// headerIndex memetakan nama kolom template ke posisi kolomnya di file
func headerIndex(got []string) map[string]int {
	normalize := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

	want := make(map[string]string, len(expectedHeaders))
	for _, h := range expectedHeaders {
		want[normalize(h)] = h
	}

	index := make(map[string]int, len(expectedHeaders))
	for i, h := range got {
		if canonical, ok := want[normalize(h)]; ok {
			index[canonical] = i
		}
	}
	return index
}

func init() {
	// numericHeaders harus subset expectedHeaders; salah ketik di sini
	// lebih baik gagal saat start daripada diam-diam melewatkan validasi
	known := map[string]bool{}
	for _, h := range expectedHeaders {
		known[h] = true
	}
	for _, h := range numericHeaders {
		if !known[h] {
			panic(fmt.Sprintf("upload: numeric header %q is not in the template", h))
		}
	}
}
