package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/frontdesk/internal/domain/booking"
	"github.com/hms/frontdesk/internal/domain/doctor"
	"github.com/hms/frontdesk/internal/domain/finance"
	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/shell"
)

// session is what a CLI command needs to mount a screen. Logs go to stderr so
// stdout carries only the JSON view.
type session struct {
	gw     *gateway.Client
	logger zerolog.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())
	return &session{
		gw:     gateway.New(cfg.APIBaseURL, gateway.WithLogger(logger)),
		logger: logger,
	}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func doctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Manage the doctor directory",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List doctors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			d := doctor.NewDirectory(s.gw, s.logger)
			if err := d.Reload(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d.View())
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a doctor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			d := doctor.NewDirectory(s.gw, s.logger)
			d.Mount(cmd.Context())
			d.SetForm(applyDoctorFlags(cmd, doctor.Form{}))
			return submitDoctor(cmd, d)
		},
	}
	doctorFlags(addCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a doctor; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			d := doctor.NewDirectory(s.gw, s.logger)
			if err := d.Reload(cmd.Context()); err != nil {
				return err
			}
			id := gateway.NewID(args[0])
			doc, ok := findDoctor(d.Doctors(), id)
			if !ok {
				return fmt.Errorf("doctor %s not found", id)
			}
			d.Edit(doc)
			d.SetForm(applyDoctorFlags(cmd, d.Form()))
			return submitDoctor(cmd, d)
		},
	}
	doctorFlags(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a doctor after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			d := doctor.NewDirectory(s.gw, s.logger)
			d.Mount(cmd.Context())

			deleted, err := d.Delete(cmd.Context(), gateway.NewID(args[0]), promptConfirmer(cmd, yes))
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), d.View())
		},
	}
	deleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	cmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd)
	return cmd
}

func doctorFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Doctor name")
	cmd.Flags().String("phone", "", "Contact number")
	cmd.Flags().String("address", "", "Address")
	cmd.Flags().String("cabin", "", "Cabin number")
	cmd.Flags().String("specialization", "", "Specialization code, e.g. cardiology")
	cmd.Flags().String("start", "", "Duty start time (HH:MM)")
	cmd.Flags().String("end", "", "Duty end time (HH:MM)")
	cmd.Flags().String("profile-url", "", "Profile image URL")
}

// applyDoctorFlags overwrites the fields of f whose flags were given.
func applyDoctorFlags(cmd *cobra.Command, f doctor.Form) doctor.Form {
	fields := map[string]*string{
		"name":        &f.Name,
		"phone":       &f.Phone,
		"address":     &f.Address,
		"cabin":       &f.CabinNo,
		"start":       &f.StartTime,
		"end":         &f.EndTime,
		"profile-url": &f.ProfileURL,
	}
	for name, dst := range fields {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	if cmd.Flags().Changed("specialization") {
		v, _ := cmd.Flags().GetString("specialization")
		f.Specialization = doctor.Specialization(v)
	}
	return f
}

func submitDoctor(cmd *cobra.Command, d *doctor.Directory) error {
	err := d.Submit(cmd.Context())
	if perr := printJSON(cmd.OutOrStdout(), d.View()); perr != nil {
		return perr
	}
	return err
}

func findDoctor(docs []gateway.Doctor, id gateway.ID) (gateway.Doctor, bool) {
	for _, d := range docs {
		if d.ID.Equal(id) {
			return d, true
		}
	}
	return gateway.Doctor{}, false
}

// promptConfirmer asks on stdin; only "y" or "yes" confirms.
func promptConfirmer(cmd *cobra.Command, yes bool) doctor.Confirmer {
	return doctor.ConfirmFunc(func(prompt string) bool {
		if yes {
			return true
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

type bookOutput struct {
	Outcome       booking.Outcome `json:"outcome"`
	PatientID     *gateway.ID     `json:"patient_id,omitempty"`
	TransactionID *gateway.ID     `json:"transaction_id,omitempty"`
	Error         string          `json:"error,omitempty"`
	View          booking.View    `json:"view"`
}

func bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment and record its fee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			var f booking.Form
			f.Name, _ = cmd.Flags().GetString("name")
			f.Age, _ = cmd.Flags().GetString("age")
			f.Phone, _ = cmd.Flags().GetString("phone")
			doctorID, _ := cmd.Flags().GetString("doctor")
			f.DoctorID = gateway.NewID(doctorID)
			f.Date, _ = cmd.Flags().GetString("date")
			f.Time, _ = cmd.Flags().GetString("time")
			f.Reason, _ = cmd.Flags().GetString("reason")

			return runBooking(cmd.Context(), cmd.OutOrStdout(), booking.NewScreen(s.gw, s.logger), f)
		},
	}
	cmd.Flags().String("name", "", "Patient name")
	cmd.Flags().String("age", "", "Patient age")
	cmd.Flags().String("phone", "", "Patient contact number")
	cmd.Flags().String("doctor", "", "Doctor id")
	cmd.Flags().String("date", "", "Appointment date (YYYY-MM-DD)")
	cmd.Flags().String("time", "", "Appointment time (HH:MM)")
	cmd.Flags().String("reason", "", "Reason for visit")
	return cmd
}

func runBooking(ctx context.Context, w io.Writer, s *booking.Screen, f booking.Form) error {
	s.Mount(ctx)
	s.Wait()
	s.SetForm(f)

	res := s.Book(ctx)
	s.Wait()

	out := bookOutput{Outcome: res.Outcome, View: s.View()}
	if res.Patient != nil {
		id := res.Patient.ID
		out.PatientID = &id
	}
	if res.Transaction != nil {
		id := res.Transaction.ID
		out.TransactionID = &id
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	if err := printJSON(w, out); err != nil {
		return err
	}
	if res.Outcome != booking.Booked {
		return fmt.Errorf("booking %s: %w", res.Outcome, res.Err)
	}
	return nil
}

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the financial dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			tab, _ := cmd.Flags().GetInt("tab")
			d := finance.NewDashboard(s.gw, s.logger)
			if err := d.SelectTab(finance.Tab(tab)); err != nil {
				return err
			}
			d.Load(cmd.Context())
			return printJSON(cmd.OutOrStdout(), d.View())
		},
	}
	cmd.Flags().Int("tab", int(finance.Overview), "Tab: 0 overview, 1 analytics, 2 transactions, 3 reports")
	return cmd
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the screen route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), shell.NavBar())
		},
	}
}
