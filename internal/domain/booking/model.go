package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/validation"
)

// AppointmentFee is charged for every booking regardless of doctor.
const AppointmentFee = 500

const appointmentCategory = "Appointment"

// Form is the book-appointment form. Age is kept as entered and parsed on
// submit; clients may send it as a JSON string or number.
type Form struct {
	Name     string     `json:"name"`
	Age      string     `json:"age"`
	Phone    string     `json:"phone"`
	DoctorID gateway.ID `json:"doctorId"`
	Date     string     `json:"date"`
	Time     string     `json:"time"`
	Reason   string     `json:"reason"`
}

// Validate requires every field. Doctor availability, duty hours and
// double-booking are not checked.
func (f Form) Validate() error {
	var errs validation.Errors
	errs.Required("name", f.Name)
	errs.Required("age", f.Age)
	errs.IntRange("age", f.Age, 0, 150)
	errs.Required("phone", f.Phone)
	errs.Required("doctorId", f.DoctorID.String())
	errs.Required("date", f.Date)
	errs.Date("date", f.Date)
	errs.Required("time", f.Time)
	errs.TimeOfDay("time", f.Time)
	errs.Required("reason", f.Reason)
	return errs.Err()
}

func (f *Form) UnmarshalJSON(b []byte) error {
	type form Form
	aux := struct {
		*form
		Age json.RawMessage `json:"age"`
	}{form: (*form)(f)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	age, err := decodeAge(aux.Age)
	if err != nil {
		return err
	}
	f.Age = age
	return nil
}

func decodeAge(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid age %s", raw)
	}
	return n.String(), nil
}

func (f Form) IsZero() bool {
	return f == Form{}
}

func (f Form) patient() gateway.Patient {
	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))
	return gateway.Patient{
		Name:            strings.TrimSpace(f.Name),
		Age:             gateway.Int(age),
		Phone:           strings.TrimSpace(f.Phone),
		Disease:         f.Reason,
		AppointmentDate: f.Date,
		AppointmentTime: f.Time,
		DoctorID:        f.DoctorID,
	}
}

// appointmentTransaction is the revenue record posted once the patient exists.
func (f Form) appointmentTransaction(patientID gateway.ID) gateway.Transaction {
	doctorID := f.DoctorID
	category := appointmentCategory
	return gateway.Transaction{
		Type:        gateway.TypeAppointment,
		Description: "Appointment with " + strings.TrimSpace(f.Name),
		Amount:      gateway.NewAmount(AppointmentFee),
		Date:        f.Date,
		Status:      gateway.StatusCompleted,
		PatientID:   &patientID,
		DoctorID:    &doctorID,
		Category:    &category,
	}
}

// Outcome classifies a booking attempt.
type Outcome int

const (
	// Failed means nothing was created.
	Failed Outcome = iota
	// PatientOnly means the patient record exists but its transaction does
	// not. The two writes are not atomic and this state is left as is.
	PatientOnly
	Booked
)

var outcomeNames = map[Outcome]string{
	Failed:      "failed",
	PatientOnly: "patient_only",
	Booked:      "booked",
}

func (o Outcome) String() string {
	if n, ok := outcomeNames[o]; ok {
		return n
	}
	return "unknown"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result reports what a booking attempt created.
type Result struct {
	Outcome     Outcome
	Patient     *gateway.Patient
	Transaction *gateway.Transaction
	Err         error
}

// PatientLine is one appointment row in a doctor panel.
type PatientLine struct {
	ID      gateway.ID  `json:"id"`
	Name    string      `json:"name"`
	Age     gateway.Int `json:"age"`
	Phone   string      `json:"phone"`
	Visit   string      `json:"visit"`
	Initial string      `json:"initial"`
}

func newPatientLine(p gateway.Patient) PatientLine {
	return PatientLine{
		ID:      p.ID,
		Name:    p.Name,
		Age:     p.Age,
		Phone:   p.Phone,
		Visit:   p.Disease + " @ " + p.AppointmentTime,
		Initial: initial(p.Name),
	}
}

// Panel is the per-doctor appointments card.
type Panel struct {
	DoctorID       gateway.ID    `json:"doctor_id"`
	DoctorName     string        `json:"doctor_name"`
	Initial        string        `json:"initial"`
	Specialization string        `json:"specialization"`
	Hours          string        `json:"hours"`
	Cabin          string        `json:"cabin"`
	Count          int           `json:"count"`
	Patients       []PatientLine `json:"patients"`
}

func newPanel(d gateway.Doctor, patients []gateway.Patient) Panel {
	p := Panel{
		DoctorID:       d.ID,
		DoctorName:     d.Name,
		Initial:        initial(d.Name),
		Specialization: d.Specialization,
		Hours:          d.StartTime + " – " + d.EndTime,
		Cabin:          d.CabinNo,
		Count:          len(patients),
		Patients:       make([]PatientLine, 0, len(patients)),
	}
	for _, pt := range patients {
		p.Patients = append(p.Patients, newPatientLine(pt))
	}
	return p
}

func initial(name string) string {
	for _, r := range name {
		return string(r)
	}
	return ""
}
