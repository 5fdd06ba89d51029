package summary

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSamplePeriod() *PeriodSummary {
	period := &PeriodSummary{Clients: NewClientMap(), MonthTotal: &PeriodTotals{}}

	// Urutan sengaja tidak alfabetis: urutan first-seen harus dipertahankan
	for _, name := range []string{"Zeta Corp", "Acme", "Midway"} {
		client := period.Clients.GetOrCreate(name)
		dept := client.Departments.GetOrCreate("Support")
		emp := &EmployeeSummary{EmpID: "E1-" + name, EmpName: "Emp " + name}
		emp.add("A", 1200)
		dept.Employees = append(dept.Employees, emp)
		dept.DeptHeadCount++
		dept.add("A", 1200)
		client.ClientHeadCount++
		client.add("A", 1200)
		period.MonthTotal.TotalHeadCount++
		period.MonthTotal.add("A", 1200)
	}

	return period
}

func TestPeriodMap_MarshalPreservesInsertionOrder(t *testing.T) {
	m := NewPeriodMap()
	m.Set("2025-03", buildSamplePeriod())
	m.Set("2025-01", &PeriodSummary{Message: "No data found for 2025-01"})

	out, err := json.Marshal(m)
	require.NoError(t, err)

	// 2025-03 dimasukkan duluan, harus tetap di depan
	assert.Less(t,
		strings.Index(string(out), "2025-03"),
		strings.Index(string(out), "2025-01"),
	)
	assert.Less(t,
		strings.Index(string(out), "Zeta Corp"),
		strings.Index(string(out), "Acme"),
	)
}

func TestPeriodMap_JSONRoundTripIsIdentical(t *testing.T) {
	m := NewPeriodMap()
	m.Set("2025-02", buildSamplePeriod())

	first, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded PeriodMap
	require.NoError(t, json.Unmarshal(first, &decoded))

	second, err := json.Marshal(&decoded)
	require.NoError(t, err)

	// Round-trip lewat cache tidak boleh mengubah byte output
	assert.Equal(t, string(first), string(second))
}

func TestPeriodSummary_HasData(t *testing.T) {
	marker := &PeriodSummary{Message: "No data found for 2025-01"}
	assert.False(t, marker.HasData())
	assert.True(t, buildSamplePeriod().HasData())
}

func TestDepartmentSummary_EmployeeLookup(t *testing.T) {
	dept := &DepartmentSummary{}
	dept.Employees = append(dept.Employees, &EmployeeSummary{EmpID: "E100"})

	assert.NotNil(t, dept.employee("E100"))
	assert.Nil(t, dept.employee("E200"))
}

func TestEmployeeSummary_AddAccumulates(t *testing.T) {
	emp := &EmployeeSummary{}
	emp.add("A", 100)
	emp.add("PRIME", 250)
	emp.add("A", 50)

	assert.Equal(t, 150.0, emp.ShiftA)
	assert.Equal(t, 250.0, emp.ShiftPrime)
	assert.Equal(t, 400.0, emp.Total)
}
