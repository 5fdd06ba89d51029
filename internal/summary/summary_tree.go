package summary

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/allowance"
)

// Pohon agregasi period → client → department → employee.
// Koleksi bersarang memakai ordered map eksplisit supaya urutan first-seen
// dari query ikut terbawa sampai output JSON, termasuk saat hasil default
// di-round-trip lewat cache.

// EmployeeSummary adalah daun pohon: total per shift type untuk satu karyawan
// dalam satu department/periode.
type EmployeeSummary struct {
	EmpID          string  `json:"emp_id"`
	EmpName        string  `json:"emp_name"`
	AccountManager string  `json:"account_manager"`
	ShiftA         float64 `json:"A"`
	ShiftB         float64 `json:"B"`
	ShiftC         float64 `json:"C"`
	ShiftPrime     float64 `json:"PRIME"`
	Total          float64 `json:"total"`
}

func (e *EmployeeSummary) add(shiftType string, amount float64) {
	switch shiftType {
	case allowance.ShiftTypeA:
		e.ShiftA += amount
	case allowance.ShiftTypeB:
		e.ShiftB += amount
	case allowance.ShiftTypeC:
		e.ShiftC += amount
	case allowance.ShiftTypePrime:
		e.ShiftPrime += amount
	}
	e.Total += amount
}

type DepartmentSummary struct {
	Name          string             `json:"-"`
	DeptA         float64            `json:"dept_A"`
	DeptB         float64            `json:"dept_B"`
	DeptC         float64            `json:"dept_C"`
	DeptPrime     float64            `json:"dept_PRIME"`
	DeptTotal     float64            `json:"dept_total"`
	Employees     []*EmployeeSummary `json:"employees"`
	DeptHeadCount int                `json:"dept_head_count"`
}

func (d *DepartmentSummary) add(shiftType string, amount float64) {
	switch shiftType {
	case allowance.ShiftTypeA:
		d.DeptA += amount
	case allowance.ShiftTypeB:
		d.DeptB += amount
	case allowance.ShiftTypeC:
		d.DeptC += amount
	case allowance.ShiftTypePrime:
		d.DeptPrime += amount
	}
	d.DeptTotal += amount
}

// employee mencari entry karyawan berdasarkan emp_id; pencarian linear
// mengikuti bentuk datanya: jumlah karyawan per department kecil.
func (d *DepartmentSummary) employee(empID string) *EmployeeSummary {
	for _, e := range d.Employees {
		if e.EmpID == empID {
			return e
		}
	}
	return nil
}

type ClientSummary struct {
	Name            string         `json:"-"`
	ClientA         float64        `json:"client_A"`
	ClientB         float64        `json:"client_B"`
	ClientC         float64        `json:"client_C"`
	ClientPrime     float64        `json:"client_PRIME"`
	Departments     *DepartmentMap `json:"departments"`
	ClientHeadCount int            `json:"client_head_count"`
	ClientTotal     float64        `json:"client_total"`
}

func (c *ClientSummary) add(shiftType string, amount float64) {
	switch shiftType {
	case allowance.ShiftTypeA:
		c.ClientA += amount
	case allowance.ShiftTypeB:
		c.ClientB += amount
	case allowance.ShiftTypeC:
		c.ClientC += amount
	case allowance.ShiftTypePrime:
		c.ClientPrime += amount
	}
	c.ClientTotal += amount
}

// PeriodTotals adalah rollup level periode ("month_total" di response)
type PeriodTotals struct {
	TotalHeadCount int     `json:"total_head_count"`
	ShiftA         float64 `json:"A"`
	ShiftB         float64 `json:"B"`
	ShiftC         float64 `json:"C"`
	ShiftPrime     float64 `json:"PRIME"`
	TotalAllowance float64 `json:"total_allowance"`
}

func (t *PeriodTotals) add(shiftType string, amount float64) {
	switch shiftType {
	case allowance.ShiftTypeA:
		t.ShiftA += amount
	case allowance.ShiftTypeB:
		t.ShiftB += amount
	case allowance.ShiftTypeC:
		t.ShiftC += amount
	case allowance.ShiftTypePrime:
		t.ShiftPrime += amount
	}
	t.TotalAllowance += amount
}

// PeriodSummary adalah satu entry di response: marker "no data"
// (Message terisi) atau hasil agregasi (Clients + MonthTotal terisi).
type PeriodSummary struct {
	Message    string        `json:"message,omitempty"`
	Clients    *ClientMap    `json:"clients,omitempty"`
	MonthTotal *PeriodTotals `json:"month_total,omitempty"`
}

// HasData melaporkan apakah periode ini berisi hasil agregasi
func (p *PeriodSummary) HasData() bool {
	return p.Clients != nil
}

// --- Ordered maps ---

type DepartmentMap struct {
	names []string
	items map[string]*DepartmentSummary
}

func NewDepartmentMap() *DepartmentMap {
	return &DepartmentMap{items: map[string]*DepartmentSummary{}}
}

func (m *DepartmentMap) Get(name string) *DepartmentSummary {
	return m.items[name]
}

func (m *DepartmentMap) GetOrCreate(name string) *DepartmentSummary {
	if d, ok := m.items[name]; ok {
		return d
	}
	d := &DepartmentSummary{Name: name, Employees: []*EmployeeSummary{}}
	m.items[name] = d
	m.names = append(m.names, name)
	return d
}

func (m *DepartmentMap) Names() []string { return m.names }

func (m *DepartmentMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.names, func(name string) any { return m.items[name] })
}

func (m *DepartmentMap) UnmarshalJSON(data []byte) error {
	m.names = nil
	m.items = map[string]*DepartmentSummary{}
	return unmarshalOrdered(data, func(name string, raw json.RawMessage) error {
		d := &DepartmentSummary{Name: name}
		if err := json.Unmarshal(raw, d); err != nil {
			return err
		}
		m.items[name] = d
		m.names = append(m.names, name)
		return nil
	})
}

type ClientMap struct {
	names []string
	items map[string]*ClientSummary
}

func NewClientMap() *ClientMap {
	return &ClientMap{items: map[string]*ClientSummary{}}
}

func (m *ClientMap) Get(name string) *ClientSummary {
	return m.items[name]
}

func (m *ClientMap) GetOrCreate(name string) *ClientSummary {
	if c, ok := m.items[name]; ok {
		return c
	}
	c := &ClientSummary{Name: name, Departments: NewDepartmentMap()}
	m.items[name] = c
	m.names = append(m.names, name)
	return c
}

func (m *ClientMap) Names() []string { return m.names }

func (m *ClientMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.names, func(name string) any { return m.items[name] })
}

func (m *ClientMap) UnmarshalJSON(data []byte) error {
	m.names = nil
	m.items = map[string]*ClientSummary{}
	return unmarshalOrdered(data, func(name string, raw json.RawMessage) error {
		c := &ClientSummary{Name: name}
		if err := json.Unmarshal(raw, c); err != nil {
			return err
		}
		m.items[name] = c
		m.names = append(m.names, name)
		return nil
	})
}

// PeriodMap adalah root response: label periode → PeriodSummary
type PeriodMap struct {
	labels []string
	items  map[string]*PeriodSummary
}

func NewPeriodMap() *PeriodMap {
	return &PeriodMap{items: map[string]*PeriodSummary{}}
}

func (m *PeriodMap) Get(label string) *PeriodSummary {
	return m.items[label]
}

func (m *PeriodMap) Set(label string, p *PeriodSummary) {
	if _, ok := m.items[label]; !ok {
		m.labels = append(m.labels, label)
	}
	m.items[label] = p
}

func (m *PeriodMap) Labels() []string { return m.labels }

func (m *PeriodMap) Len() int { return len(m.labels) }

func (m *PeriodMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.labels, func(label string) any { return m.items[label] })
}

func (m *PeriodMap) UnmarshalJSON(data []byte) error {
	m.labels = nil
	m.items = map[string]*PeriodSummary{}
	return unmarshalOrdered(data, func(label string, raw json.RawMessage) error {
		p := &PeriodSummary{}
		if err := json.Unmarshal(raw, p); err != nil {
			return err
		}
		m.Set(label, p)
		return nil
	})
}

// marshalOrdered menulis object JSON dengan urutan key sesuai slice
func marshalOrdered(keys []string, value func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(value(key))
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unmarshalOrdered membaca object JSON key demi key lewat json.Decoder
// supaya urutan key aslinya bisa dipertahankan
func unmarshalOrdered(data []byte, set func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := set(key, raw); err != nil {
			return err
		}
	}

	_, err = dec.Token() // closing '}'
	return err
}
