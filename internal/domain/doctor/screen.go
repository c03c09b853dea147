package doctor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/notice"
)

const (
	msgAdded      = "Doctor added successfully!"
	msgUpdated    = "Doctor updated successfully!"
	msgSaveFailed = "Failed to save doctor."
	msgDelFailed  = "Failed to delete doctor."

	// DeletePrompt is the question put to the Confirmer before a delete.
	DeletePrompt = "Are you sure you want to delete this doctor?"
)

// Directory is the doctor management screen: the doctor list plus the
// add/edit form. Every successful mutation reloads the full list; the list is
// never patched from a mutation response.
//
// A Directory belongs to a single caller and is not safe for concurrent use.
type Directory struct {
	gw     Gateway
	logger zerolog.Logger

	doctors []gateway.Doctor
	form    Form
	editing *gateway.ID
	saving  bool
	message notice.Message
}

func NewDirectory(gw Gateway, logger zerolog.Logger) *Directory {
	return &Directory{gw: gw, logger: logger}
}

// Mount performs the initial list load.
func (d *Directory) Mount(ctx context.Context) {
	_ = d.Reload(ctx)
}

// Reload replaces the list with the gateway's current collection. On failure
// the previous list is kept.
func (d *Directory) Reload(ctx context.Context) error {
	docs, err := d.gw.ListDoctors(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to fetch doctors")
		return fmt.Errorf("list doctors: %w", err)
	}
	d.doctors = docs
	return nil
}

// Doctors returns the list in gateway order.
func (d *Directory) Doctors() []gateway.Doctor {
	out := make([]gateway.Doctor, len(d.doctors))
	copy(out, d.doctors)
	return out
}

func (d *Directory) Form() Form { return d.form }

// SetForm replaces the form contents, as typing into the inputs would.
func (d *Directory) SetForm(f Form) { d.form = f }

// Editing returns the id under edit, if the form is in edit mode.
func (d *Directory) Editing() (gateway.ID, bool) {
	if d.editing == nil {
		return gateway.ID{}, false
	}
	return *d.editing, true
}

func (d *Directory) Saving() bool { return d.saving }

func (d *Directory) Message() notice.Message { return d.message }

// Edit switches the form to update mode, pre-filled with a snapshot of doc.
// Later changes to the list do not affect the form.
func (d *Directory) Edit(doc gateway.Doctor) {
	id := doc.ID
	d.editing = &id
	d.form = FormFromDoctor(doc)
}

// CancelEdit leaves edit mode and clears the form without a gateway call.
func (d *Directory) CancelEdit() {
	d.editing = nil
	d.form = Form{}
}

// Submit creates a doctor, or updates the one under edit. On success the form
// resets, edit mode ends and the list is reloaded. On failure the form keeps
// what was entered and the list is left alone.
func (d *Directory) Submit(ctx context.Context) error {
	d.saving = true
	d.message = notice.Message{}
	defer func() { d.saving = false }()

	if err := d.form.Validate(); err != nil {
		d.message = notice.Failure(msgSaveFailed)
		return err
	}

	var (
		err     error
		success string
	)
	if d.editing != nil {
		_, err = d.gw.UpdateDoctor(ctx, *d.editing, d.form.doctor())
		success = msgUpdated
	} else {
		_, err = d.gw.CreateDoctor(ctx, d.form.doctor())
		success = msgAdded
	}
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to save doctor")
		d.message = notice.Failure(msgSaveFailed)
		return fmt.Errorf("save doctor: %w", err)
	}

	d.message = notice.Success(success)
	d.form = Form{}
	d.editing = nil
	_ = d.Reload(ctx)
	return nil
}

// Delete removes a doctor after the Confirmer approves. It reports whether a
// delete was attempted; a declined prompt changes nothing.
func (d *Directory) Delete(ctx context.Context, id gateway.ID, c Confirmer) (bool, error) {
	if c == nil || !c.Confirm(DeletePrompt) {
		return false, nil
	}
	if err := d.gw.DeleteDoctor(ctx, id); err != nil {
		d.logger.Error().Err(err).Str("doctor_id", id.String()).Msg("failed to delete doctor")
		d.message = notice.Failure(msgDelFailed)
		return true, fmt.Errorf("delete doctor %s: %w", id, err)
	}
	_ = d.Reload(ctx)
	return true, nil
}

// View is the rendered state of the directory.
type View struct {
	Title           string          `json:"title"`
	FormTitle       string          `json:"form_title"`
	SubmitLabel     string          `json:"submit_label"`
	Editing         *gateway.ID     `json:"editing,omitempty"`
	Form            Form            `json:"form"`
	Specializations []SpecOption    `json:"specializations"`
	Doctors         []Card          `json:"doctors"`
	Message         *notice.Message `json:"message,omitempty"`
}

// SpecOption is one entry of the specialization selector.
type SpecOption struct {
	Value Specialization `json:"value"`
	Label string         `json:"label"`
}

func (d *Directory) View() View {
	v := View{
		Title:       "Doctors Management",
		FormTitle:   "Add New Doctor",
		SubmitLabel: "Add Doctor",
		Form:        d.form,
		Doctors:     make([]Card, 0, len(d.doctors)),
	}
	if d.editing != nil {
		id := *d.editing
		v.Editing = &id
		v.FormTitle = "Edit Doctor"
		v.SubmitLabel = "Update Doctor"
	}
	if d.saving {
		v.SubmitLabel = "Saving..."
	}
	for _, s := range Specializations() {
		v.Specializations = append(v.Specializations, SpecOption{Value: s, Label: s.Label()})
	}
	for _, doc := range d.doctors {
		v.Doctors = append(v.Doctors, NewCard(doc))
	}
	if !d.message.IsZero() {
		m := d.message
		v.Message = &m
	}
	return v
}
