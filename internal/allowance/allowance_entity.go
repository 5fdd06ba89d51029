package allowance

import (
	"time"
)

// Shift types dengan rate per hari masing-masing
const (
	ShiftTypeA     = "A"
	ShiftTypeB     = "B"
	ShiftTypeC     = "C"
	ShiftTypePrime = "PRIME"
)

// ShiftTypes dalam urutan pelaporan tetap
var ShiftTypes = []string{ShiftTypeA, ShiftTypeB, ShiftTypeC, ShiftTypePrime}

// ShiftAllowance adalah satu baris fakta per karyawan per bulan kerja.
// duration_month = bulan kerja, payroll_month = bulan pembayaran; keduanya
// disimpan sebagai tanggal 1 di bulan tersebut.
type ShiftAllowance struct {
	ID                uint      `gorm:"primaryKey"`
	EmpID             string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_shift_allowance_emp_month"`
	EmpName           string    `gorm:"type:varchar(255);not null"`
	Grade             string    `gorm:"type:varchar(50)"`
	Department        string    `gorm:"type:varchar(255);index"`
	Client            string    `gorm:"type:varchar(255);index"`
	Project           string    `gorm:"type:varchar(255)"`
	ProjectCode       string    `gorm:"type:varchar(100)"`
	AccountManager    string    `gorm:"type:varchar(255);index"`
	DeliveryManager   string    `gorm:"type:varchar(255)"`
	PracticeLead      string    `gorm:"type:varchar(255)"`
	BillabilityStatus string    `gorm:"type:varchar(100)"`
	PracticeRemarks   string    `gorm:"type:text"`
	RmgComments       string    `gorm:"type:text"`
	DurationMonth     time.Time `gorm:"type:date;not null;uniqueIndex:uq_shift_allowance_emp_month;index"`
	PayrollMonth      time.Time `gorm:"type:date;not null;index"`
	CreatedAt         time.Time

	Mappings []ShiftMapping `gorm:"foreignKey:ShiftAllowanceID;constraint:OnDelete:CASCADE"`
}

func (ShiftAllowance) TableName() string { return "shift_allowances" }

// ShiftMapping adalah anak ShiftAllowance: satu baris per shift type yang
// punya hari kerja pada record tersebut (0 sampai 4 baris per record).
type ShiftMapping struct {
	ID               uint    `gorm:"primaryKey"`
	ShiftAllowanceID uint    `gorm:"not null;index"`
	ShiftType        string  `gorm:"type:varchar(10);not null"`
	Days             float64 `gorm:"type:numeric(6,2);not null"`
}

func (ShiftMapping) TableName() string { return "shift_mappings" }

// ShiftRate memberi tarif per hari untuk (shift type, payroll year).
// Read-only dari sisi service.
type ShiftRate struct {
	ID          uint    `gorm:"primaryKey"`
	ShiftType   string  `gorm:"type:varchar(10);not null;uniqueIndex:uq_shift_amount_type_year"`
	PayrollYear int     `gorm:"not null;uniqueIndex:uq_shift_amount_type_year"`
	Amount      float64 `gorm:"type:numeric(12,2);not null"`
}

func (ShiftRate) TableName() string { return "shift_amounts" }
