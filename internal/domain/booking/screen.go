package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/notice"
)

const (
	msgBooked     = "Appointment booked successfully!"
	msgBookFailed = "Failed to book appointment."
)

// Screen is the appointment booking screen: the booking form, the doctor
// selector and one appointments panel per doctor.
//
// Panel fetches run concurrently and land in the screen as they resolve, so
// Panels and Loading may be read while fetches are in flight. The form and
// Book belong to a single caller.
type Screen struct {
	gw     Gateway
	logger zerolog.Logger

	// OnPanel, when set, is called after each doctor's patients arrive.
	OnPanel func(doctorID gateway.ID, patients []gateway.Patient)
	// OnBooked, when set, is called after a booking fully succeeds and
	// before the screen refreshes.
	OnBooked func(Result)

	mu       sync.Mutex
	doctors  []gateway.Doctor
	patients map[string][]gateway.Patient
	loading  bool
	wg       sync.WaitGroup

	form    Form
	message notice.Message
}

func NewScreen(gw Gateway, logger zerolog.Logger) *Screen {
	return &Screen{
		gw:       gw,
		logger:   logger,
		patients: make(map[string][]gateway.Patient),
		loading:  true,
	}
}

// Mount fetches the doctor list once and starts an independent patient fetch
// for each doctor. It returns once the doctor list has resolved; use Wait to
// block until every panel has settled.
//
// Panels already loaded are kept until their replacement arrives.
func (s *Screen) Mount(ctx context.Context) {
	docs, err := s.gw.ListDoctors(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.doctors = docs
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch doctors")
		return
	}
	for _, d := range docs {
		s.wg.Add(1)
		go s.fetchPanel(ctx, d.ID)
	}
}

func (s *Screen) fetchPanel(ctx context.Context, doctorID gateway.ID) {
	defer s.wg.Done()

	patients, err := s.gw.ListDoctorPatients(ctx, doctorID)
	if err != nil {
		s.logger.Error().Err(err).Str("doctor_id", doctorID.String()).Msg("failed to fetch patients for doctor")
		return
	}

	s.mu.Lock()
	s.patients[doctorID.String()] = patients
	s.mu.Unlock()

	if s.OnPanel != nil {
		s.OnPanel(doctorID, patients)
	}
}

// Wait blocks until every panel fetch started so far has settled.
func (s *Screen) Wait() {
	s.wg.Wait()
}

func (s *Screen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Doctors returns the doctor list in gateway order.
func (s *Screen) Doctors() []gateway.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gateway.Doctor, len(s.doctors))
	copy(out, s.doctors)
	return out
}

// Panels returns one panel per doctor, in doctor order. A doctor whose
// patients have not arrived, or failed to load, shows no appointments.
func (s *Screen) Panels() []Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Panel, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, newPanel(d, s.patients[d.ID.String()]))
	}
	return out
}

func (s *Screen) Form() Form { return s.form }

func (s *Screen) SetForm(f Form) { s.form = f }

func (s *Screen) Message() notice.Message { return s.message }

// Book creates the patient record under the chosen doctor and then the
// appointment fee transaction linked to it. The two writes are sequential and
// not atomic: when the second fails the patient is kept and the outcome is
// PatientOnly.
//
// Only a Booked outcome resets the form and refreshes the screen; the new
// appointment appears once the doctor's panel is refetched.
func (s *Screen) Book(ctx context.Context) Result {
	s.message = notice.Message{}

	if err := s.form.Validate(); err != nil {
		s.message = notice.Failure(msgBookFailed)
		return Result{Outcome: Failed, Err: err}
	}

	f := s.form
	p, err := s.gw.CreatePatient(ctx, f.DoctorID, f.patient())
	if err != nil {
		s.logger.Error().Err(err).Str("doctor_id", f.DoctorID.String()).Msg("failed to book appointment")
		s.message = notice.Failure(msgBookFailed)
		return Result{Outcome: Failed, Err: fmt.Errorf("create patient: %w", err)}
	}

	tx, err := s.gw.CreateTransaction(ctx, f.appointmentTransaction(p.ID))
	if err != nil {
		s.logger.Error().Err(err).
			Str("doctor_id", f.DoctorID.String()).
			Str("patient_id", p.ID.String()).
			Msg("appointment recorded without fee transaction")
		s.message = notice.Failure(msgBookFailed)
		return Result{Outcome: PatientOnly, Patient: p, Err: fmt.Errorf("create appointment transaction: %w", err)}
	}

	res := Result{Outcome: Booked, Patient: p, Transaction: tx}
	s.message = notice.Success(msgBooked)
	s.form = Form{}
	if s.OnBooked != nil {
		s.OnBooked(res)
	}
	s.Mount(ctx)
	return res
}

// View is the rendered state of the booking screen.
type View struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle"`
	Loading  bool            `json:"loading"`
	Form     Form            `json:"form"`
	Doctors  []DoctorOption  `json:"doctors"`
	Panels   []Panel         `json:"panels"`
	Message  *notice.Message `json:"message,omitempty"`
}

// DoctorOption is one entry of the doctor selector.
type DoctorOption struct {
	ID             gateway.ID `json:"id"`
	Name           string     `json:"name"`
	Specialization string     `json:"specialization"`
}

func (s *Screen) View() View {
	v := View{
		Title:    "Appointment Management",
		Subtitle: "Schedule and manage patient appointments",
		Loading:  s.Loading(),
		Form:     s.form,
		Doctors:  []DoctorOption{},
		Panels:   []Panel{},
	}
	if !v.Loading {
		for _, d := range s.Doctors() {
			v.Doctors = append(v.Doctors, DoctorOption{ID: d.ID, Name: d.Name, Specialization: d.Specialization})
		}
		v.Panels = s.Panels()
	}
	if !s.message.IsZero() {
		m := s.message
		v.Message = &m
	}
	return v
}
