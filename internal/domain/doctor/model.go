package doctor

import (
	"strings"

	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/validation"
)

// Specialization is the closed set of clinical specialties a doctor can hold.
type Specialization string

const (
	General     Specialization = "general"
	Cardiology  Specialization = "cardiology"
	Neurology   Specialization = "neurology"
	Orthopedics Specialization = "orthopedics"
	Pediatrics  Specialization = "pediatrics"
	Gynecology  Specialization = "gynecology"
	Dermatology Specialization = "dermatology"
	Psychiatry  Specialization = "psychiatry"
	Oncology    Specialization = "oncology"
)

var specializationLabels = map[Specialization]string{
	General:     "General Physician",
	Cardiology:  "Cardiologist",
	Neurology:   "Neurologist",
	Orthopedics: "Orthopedic Surgeon",
	Pediatrics:  "Pediatrician",
	Gynecology:  "Gynecologist",
	Dermatology: "Dermatologist",
	Psychiatry:  "Psychiatrist",
	Oncology:    "Oncologist",
}

// Specializations returns every specialization in selection-list order.
func Specializations() []Specialization {
	return []Specialization{
		General, Cardiology, Neurology, Orthopedics, Pediatrics,
		Gynecology, Dermatology, Psychiatry, Oncology,
	}
}

func (s Specialization) Valid() bool {
	_, ok := specializationLabels[s]
	return ok
}

// Label returns the display name, or the raw value for unknown codes.
func (s Specialization) Label() string {
	if l, ok := specializationLabels[s]; ok {
		return l
	}
	return string(s)
}

// PlaceholderImage is shown on cards for doctors without a profile image.
const PlaceholderImage = "https://via.placeholder.com/100"

// Form is the add/edit doctor form.
type Form struct {
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	CabinNo        string         `json:"cabin_no"`
	Specialization Specialization `json:"specialization"`
	StartTime      string         `json:"start_time"`
	EndTime        string         `json:"end_time"`
	ProfileURL     string         `json:"profile_url"`
}

// FormFromDoctor copies d's editable fields into a new form.
func FormFromDoctor(d gateway.Doctor) Form {
	return Form{
		Name:           d.Name,
		Phone:          d.Phone,
		Address:        d.Address,
		CabinNo:        d.CabinNo,
		Specialization: Specialization(d.Specialization),
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		ProfileURL:     d.ProfileURL,
	}
}

// Validate checks required fields and formats. Duty hours are not compared:
// a start time after the end time is accepted.
func (f Form) Validate() error {
	var errs validation.Errors
	errs.Required("name", f.Name)
	errs.Required("phone", f.Phone)
	errs.Required("specialization", string(f.Specialization))
	errs.OneOf("specialization", string(f.Specialization), func(v string) bool {
		return Specialization(v).Valid()
	})
	errs.Required("start_time", f.StartTime)
	errs.TimeOfDay("start_time", f.StartTime)
	errs.Required("end_time", f.EndTime)
	errs.TimeOfDay("end_time", f.EndTime)
	errs.HTTPURL("profile_url", f.ProfileURL)
	return errs.Err()
}

// IsZero reports whether the form is in its reset state.
func (f Form) IsZero() bool {
	return f == Form{}
}

func (f Form) doctor() gateway.Doctor {
	return gateway.Doctor{
		Name:           strings.TrimSpace(f.Name),
		Phone:          strings.TrimSpace(f.Phone),
		Address:        f.Address,
		CabinNo:        f.CabinNo,
		Specialization: string(f.Specialization),
		StartTime:      f.StartTime,
		EndTime:        f.EndTime,
		ProfileURL:     f.ProfileURL,
	}
}

// Card is one entry of the directory list as displayed.
type Card struct {
	ID                  gateway.ID `json:"id"`
	Name                string     `json:"name"`
	Specialization      string     `json:"specialization"`
	SpecializationLabel string     `json:"specialization_label"`
	Hours               string     `json:"hours"`
	Phone               string     `json:"phone"`
	Cabin               string     `json:"cabin"`
	ImageURL            string     `json:"image_url"`
}

func NewCard(d gateway.Doctor) Card {
	img := d.ProfileURL
	if img == "" {
		img = PlaceholderImage
	}
	return Card{
		ID:                  d.ID,
		Name:                d.Name,
		Specialization:      d.Specialization,
		SpecializationLabel: Specialization(d.Specialization).Label(),
		Hours:               d.StartTime + " - " + d.EndTime,
		Phone:               d.Phone,
		Cabin:               d.CabinNo,
		ImageURL:            img,
	}
}
