package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/notice"
)

const msgSaveFailed = "Failed to save transaction. Please try again."

var (
	ErrInvalidTab   = errors.New("invalid tab")
	ErrInvalidKind  = errors.New("invalid dialog kind")
	ErrDialogClosed = errors.New("no dialog is open")
)

// Snapshot is one complete set of dashboard reads. A Fallback snapshot holds
// only demo data; live and demo values are never mixed.
type Snapshot struct {
	Source   Source
	Data     Data
	Summary  gateway.Summary
	Doctors  []gateway.Doctor
	Patients []gateway.Patient
}

// Fetch issues the four dashboard reads concurrently and waits for all of
// them. If any read fails, or the aggregate cannot be reshaped, the result is
// the Fallback snapshot. Failures are logged, not returned.
func Fetch(ctx context.Context, gw Gateway, logger zerolog.Logger) Snapshot {
	var (
		agg      *gateway.Aggregate
		summary  *gateway.Summary
		doctors  []gateway.Doctor
		patients []gateway.Patient
		g        errgroup.Group
	)
	g.Go(func() (err error) {
		agg, err = gw.Dashboard(ctx)
		return err
	})
	g.Go(func() (err error) {
		summary, err = gw.Summary(ctx)
		return err
	})
	g.Go(func() (err error) {
		doctors, err = gw.ListDoctors(ctx)
		return err
	})
	g.Go(func() (err error) {
		patients, err = gw.ListPatients(ctx)
		return err
	})

	err := g.Wait()
	var data Data
	if err == nil {
		data, err = Reshape(agg)
	}
	if err == nil && summary == nil {
		err = errors.New("empty financial summary")
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch financial data, showing demo data")
		return Snapshot{
			Source:   Fallback,
			Data:     FallbackData(),
			Summary:  FallbackSummary(),
			Doctors:  []gateway.Doctor{},
			Patients: []gateway.Patient{},
		}
	}
	return Snapshot{Source: Live, Data: data, Summary: *summary, Doctors: doctors, Patients: patients}
}

// Dialog is the open add transaction/expense dialog.
type Dialog struct {
	Kind DialogKind      `json:"kind"`
	Form TransactionForm `json:"form"`
}

// Dashboard is the financial dashboard screen. It belongs to a single caller
// and is not safe for concurrent use.
type Dashboard struct {
	gw     Gateway
	logger zerolog.Logger

	snapshot Snapshot
	loading  bool
	tab      Tab
	dialog   *Dialog
	saving   bool
	message  notice.Message
}

func NewDashboard(gw Gateway, logger zerolog.Logger) *Dashboard {
	return &Dashboard{gw: gw, logger: logger, loading: true}
}

// Load replaces the snapshot with a fresh set of reads.
func (d *Dashboard) Load(ctx context.Context) {
	d.loading = true
	d.snapshot = Fetch(ctx, d.gw, d.logger)
	d.loading = false
}

func (d *Dashboard) Snapshot() Snapshot { return d.snapshot }

func (d *Dashboard) Loading() bool { return d.loading }

func (d *Dashboard) Tab() Tab { return d.tab }

// SelectTab switches the display mode without fetching.
func (d *Dashboard) SelectTab(t Tab) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTab, t)
	}
	d.tab = t
	return nil
}

// Dialog returns the open dialog, or nil.
func (d *Dashboard) Dialog() *Dialog {
	if d.dialog == nil {
		return nil
	}
	dl := *d.dialog
	return &dl
}

// OpenDialog opens an empty add dialog of the given kind.
func (d *Dashboard) OpenDialog(kind DialogKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	d.dialog = &Dialog{Kind: kind}
	return nil
}

// CloseDialog discards the dialog and its form.
func (d *Dashboard) CloseDialog() {
	d.dialog = nil
}

func (d *Dashboard) SetDialogForm(f TransactionForm) error {
	if d.dialog == nil {
		return ErrDialogClosed
	}
	d.dialog.Form = f
	return nil
}

func (d *Dashboard) Message() notice.Message { return d.message }

// Save posts the dialog's transaction, reloads every dashboard read and then
// closes the dialog. On failure the dialog stays open with its form.
func (d *Dashboard) Save(ctx context.Context) error {
	if d.dialog == nil {
		return ErrDialogClosed
	}
	d.saving = true
	d.message = notice.Message{}
	defer func() { d.saving = false }()

	f := d.dialog.Form
	if err := f.Validate(); err != nil {
		d.message = notice.Failure(msgSaveFailed)
		return err
	}
	t, err := f.transaction()
	if err != nil {
		d.message = notice.Failure(msgSaveFailed)
		return err
	}
	if _, err := d.gw.CreateTransaction(ctx, t); err != nil {
		d.logger.Error().Err(err).Str("type", string(t.Type)).Msg("failed to save transaction")
		d.message = notice.Failure(msgSaveFailed)
		return fmt.Errorf("create transaction: %w", err)
	}

	d.Load(ctx)
	d.CloseDialog()
	return nil
}
