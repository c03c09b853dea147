package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ID is an identifier assigned by the remote data service. The service may
// emit numeric or string ids. An id keeps the JSON kind it was decoded with and
// is written back the same way; ids built from text, such as path parameters,
// are strings on the wire. Compare ids with Equal, which ignores the kind.
type ID struct {
	text    string
	numeric bool
}

// NewID returns a string id.
func NewID(s string) ID { return ID{text: s} }

func (id ID) String() string { return id.text }

func (id ID) IsZero() bool { return id.text == "" }

func (id ID) Equal(other ID) bool { return id.text == other.text }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.text), nil
	}
	return json.Marshal(id.text)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*id = ID{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = NewID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s", raw)
	}
	*id = ID{text: n.String(), numeric: true}
	return nil
}

// orNil hides an unassigned id so create requests leave it to the service.
func (id ID) orNil() *ID {
	if id.IsZero() {
		return nil
	}
	return &id
}

// Amount is a currency value. It decodes leniently: numbers, numeric strings
// and null are accepted, and anything unparsable becomes zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount returns an Amount of n whole currency units.
func NewAmount(n int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(n)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(unquote(b))
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// Int is a count decoded with the same leniency as Amount; fractional values
// are truncated.
type Int int64

func (n *Int) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(unquote(b))
	if err != nil {
		*n = 0
		return nil
	}
	*n = Int(d.IntPart())
	return nil
}

func unquote(b []byte) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
}

// Doctor is the doctors resource.
type Doctor struct {
	ID             ID     `json:"id,omitempty"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	CabinNo        string `json:"cabin_no"`
	Specialization string `json:"specialization"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ProfileURL     string `json:"profile_url"`
}

func (d Doctor) MarshalJSON() ([]byte, error) {
	type doctor Doctor
	return json.Marshal(struct {
		doctor
		ID *ID `json:"id,omitempty"`
	}{doctor(d), d.ID.orNil()})
}

// Patient is a patient record. Every booking creates a new one; it doubles as
// the appointment.
type Patient struct {
	ID              ID     `json:"id,omitempty"`
	Name            string `json:"name"`
	Age             Int    `json:"age"`
	Phone           string `json:"phone"`
	Disease         string `json:"disease"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	DoctorID        ID     `json:"doctorId"`
}

func (p Patient) MarshalJSON() ([]byte, error) {
	type patient Patient
	return json.Marshal(struct {
		patient
		ID *ID `json:"id,omitempty"`
	}{patient(p), p.ID.orNil()})
}

type TransactionType string

const (
	TypeAppointment TransactionType = "appointment"
	TypeSalary      TransactionType = "salary"
	TypeExpense     TransactionType = "expense"
)

var validTransactionTypes = map[TransactionType]bool{
	TypeAppointment: true, TypeSalary: true, TypeExpense: true,
}

func (t TransactionType) Valid() bool { return validTransactionTypes[t] }

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPaid      TransactionStatus = "paid"
	StatusProcessed TransactionStatus = "processed"
	StatusPending   TransactionStatus = "pending"
)

var validTransactionStatuses = map[TransactionStatus]bool{
	StatusCompleted: true, StatusPaid: true, StatusProcessed: true, StatusPending: true,
}

func (s TransactionStatus) Valid() bool { return validTransactionStatuses[s] }

// Transaction is a financial transaction record. Category is sent as null
// when unset.
type Transaction struct {
	ID          ID                `json:"id,omitempty"`
	Type        TransactionType   `json:"type"`
	Description string            `json:"description"`
	Amount      Amount            `json:"amount"`
	Date        string            `json:"date"`
	Status      TransactionStatus `json:"status"`
	PatientID   *ID               `json:"patient_id,omitempty"`
	DoctorID    *ID               `json:"doctor_id,omitempty"`
	Category    *string           `json:"category"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	type transaction Transaction
	return json.Marshal(struct {
		transaction
		ID *ID `json:"id,omitempty"`
	}{transaction(t), t.ID.orNil()})
}

// Summary holds the server-computed financial totals.
type Summary struct {
	TotalRevenue      Amount `json:"totalRevenue"`
	TotalExpenses     Amount `json:"totalExpenses"`
	TotalSalary       Amount `json:"totalSalary"`
	TotalAppointments Int    `json:"totalAppointments"`
	NetProfit         Amount `json:"netProfit"`
}

// Aggregate is the pre-summarised dashboard payload.
type Aggregate struct {
	MonthlyRevenue      []MonthlyRevenue       `json:"monthlyRevenue"`
	AppointmentEarnings []DoctorEarning        `json:"appointmentEarnings"`
	ExpenseDistribution []ExpenseShare         `json:"expenseDistribution"`
	RecentTransactions  []AggregateTransaction `json:"recentTransactions"`
}

type MonthlyRevenue struct {
	Month   string `json:"month"`
	Revenue Amount `json:"revenue"`
}

type DoctorEarning struct {
	Doctor   *DoctorRef `json:"Doctor"`
	Patients Int        `json:"patients"`
	Earnings Amount     `json:"earnings"`
}

type ExpenseShare struct {
	Category string `json:"category"`
	Amount   Amount `json:"amount"`
}

type AggregateTransaction struct {
	ID          ID          `json:"id"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Amount      Amount      `json:"amount"`
	Date        string      `json:"date"`
	Status      string      `json:"status"`
	Patient     *PatientRef `json:"Patient"`
	Doctor      *DoctorRef  `json:"Doctor"`
}

// DoctorRef is the doctor link the service embeds in aggregate rows.
type DoctorRef struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// PatientRef is the patient link the service embeds in aggregate rows.
type PatientRef struct {
	Name string `json:"name"`
}
