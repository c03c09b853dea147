package finance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hms/frontdesk/internal/platform/format"
	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/validation"
)

// Source tells whether a snapshot holds live data or the bundled demo set.
type Source string

const (
	Live     Source = "live"
	Fallback Source = "fallback"
)

// Tab selects one of the dashboard's display modes.
type Tab int

const (
	Overview Tab = iota
	Analytics
	Transactions
	Reports
)

var tabLabels = map[Tab]string{
	Overview:     "Overview",
	Analytics:    "Analytics",
	Transactions: "Transactions",
	Reports:      "Reports",
}

func Tabs() []Tab { return []Tab{Overview, Analytics, Transactions, Reports} }

func (t Tab) Valid() bool {
	_, ok := tabLabels[t]
	return ok
}

func (t Tab) Label() string { return tabLabels[t] }

// MonthlyRow is one month of the revenue trend.
type MonthlyRow struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// EarningRow is one doctor's appointment earnings.
type EarningRow struct {
	Doctor         string          `json:"doctor"`
	Specialization string          `json:"specialization"`
	Patients       int64           `json:"patients"`
	Earnings       decimal.Decimal `json:"earnings"`
}

// ExpenseRow is one expense category and its share of the total.
type ExpenseRow struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int64           `json:"percentage"`
}

// TransactionRow is a recent transaction shaped for display. Type and Status
// are capitalised.
type TransactionRow struct {
	ID          gateway.ID      `json:"id"`
	Type        string          `json:"type"`
	Patient     string          `json:"patient,omitempty"`
	Employee    string          `json:"employee,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
}

// Counterparty is the name shown for the row: patient, else employee, else
// description.
func (r TransactionRow) Counterparty() string {
	switch {
	case r.Patient != "":
		return r.Patient
	case r.Employee != "":
		return r.Employee
	}
	return r.Description
}

// Data is the reshaped dashboard aggregate.
type Data struct {
	MonthlyRevenue      []MonthlyRow     `json:"monthly_revenue"`
	AppointmentEarnings []EarningRow     `json:"appointment_earnings"`
	Expenses            []ExpenseRow     `json:"expenses"`
	RecentTransactions  []TransactionRow `json:"recent_transactions"`
}

var errIncompleteAggregate = errors.New("dashboard aggregate is missing sections")

// Reshape turns the gateway aggregate into display rows. It fails when any
// section is absent, which callers treat like a failed read.
func Reshape(agg *gateway.Aggregate) (Data, error) {
	if agg == nil || agg.MonthlyRevenue == nil || agg.AppointmentEarnings == nil ||
		agg.ExpenseDistribution == nil || agg.RecentTransactions == nil {
		return Data{}, errIncompleteAggregate
	}

	var d Data
	d.MonthlyRevenue = make([]MonthlyRow, 0, len(agg.MonthlyRevenue))
	for _, m := range agg.MonthlyRevenue {
		d.MonthlyRevenue = append(d.MonthlyRevenue, MonthlyRow{
			Month:    m.Month,
			Revenue:  m.Revenue.Decimal,
			Expenses: decimal.Zero,
			Profit:   m.Revenue.Decimal,
		})
	}

	d.AppointmentEarnings = make([]EarningRow, 0, len(agg.AppointmentEarnings))
	for _, e := range agg.AppointmentEarnings {
		row := EarningRow{
			Doctor:         "Unknown Doctor",
			Specialization: "General",
			Patients:       int64(e.Patients),
			Earnings:       e.Earnings.Decimal,
		}
		if e.Doctor != nil && e.Doctor.Name != "" {
			row.Doctor = e.Doctor.Name
		}
		if e.Doctor != nil && e.Doctor.Specialization != "" {
			row.Specialization = e.Doctor.Specialization
		}
		d.AppointmentEarnings = append(d.AppointmentEarnings, row)
	}

	amounts := make([]decimal.Decimal, 0, len(agg.ExpenseDistribution))
	for _, x := range agg.ExpenseDistribution {
		amounts = append(amounts, x.Amount.Decimal)
	}
	shares := ExpensePercentages(amounts)
	d.Expenses = make([]ExpenseRow, 0, len(agg.ExpenseDistribution))
	for i, x := range agg.ExpenseDistribution {
		d.Expenses = append(d.Expenses, ExpenseRow{Category: x.Category, Amount: x.Amount.Decimal, Percentage: shares[i]})
	}

	d.RecentTransactions = make([]TransactionRow, 0, len(agg.RecentTransactions))
	for _, t := range agg.RecentTransactions {
		row := TransactionRow{
			ID:          t.ID,
			Type:        format.Capitalize(t.Type),
			Patient:     t.Description,
			Description: t.Description,
			Amount:      t.Amount.Decimal,
			Date:        t.Date,
			Status:      format.Capitalize(t.Status),
		}
		if t.Patient != nil && t.Patient.Name != "" {
			row.Patient = t.Patient.Name
		}
		if t.Doctor != nil {
			row.Employee = t.Doctor.Name
		}
		d.RecentTransactions = append(d.RecentTransactions, row)
	}
	return d, nil
}

var hundred = decimal.NewFromInt(100)

// ExpensePercentages returns round(amount / total * 100) for each amount, or
// zeros when the total is zero. The results need not sum to 100.
func ExpensePercentages(amounts []decimal.Decimal) []int64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	out := make([]int64, len(amounts))
	if !total.IsPositive() {
		return out
	}
	for i, a := range amounts {
		out[i] = a.Div(total).Mul(hundred).Round(0).IntPart()
	}
	return out
}

// Figures are the presentational totals derived from a snapshot.
// ProfitMargin is a percentage with one decimal, zero without revenue.
type Figures struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	TotalAppointments int64           `json:"total_appointments"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`
	RevenuePerPatient decimal.Decimal `json:"revenue_per_patient"`
	DoctorCount       int             `json:"doctor_count"`
	PatientCount      int             `json:"patient_count"`
}

// Derive computes the totals shown on the dashboard. Expenses include
// salaries.
func Derive(s Snapshot) Figures {
	f := Figures{
		TotalRevenue:      s.Summary.TotalRevenue.Decimal,
		TotalExpenses:     s.Summary.TotalExpenses.Add(s.Summary.TotalSalary.Decimal),
		NetProfit:         s.Summary.NetProfit.Decimal,
		TotalAppointments: int64(s.Summary.TotalAppointments),
		ProfitMargin:      decimal.Zero,
		RevenuePerPatient: decimal.Zero,
		DoctorCount:       len(s.Doctors),
		PatientCount:      len(s.Patients),
	}
	if f.TotalRevenue.IsPositive() {
		f.ProfitMargin = f.NetProfit.Div(f.TotalRevenue).Mul(hundred).Round(1)
	}
	if f.PatientCount > 0 {
		f.RevenuePerPatient = f.TotalRevenue.Div(decimal.NewFromInt(int64(f.PatientCount)))
	}
	return f
}

// Tone is a display colour hint.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
)

// TypeTone colours a capitalised transaction type.
func TypeTone(typ string) Tone {
	switch typ {
	case "Appointment":
		return ToneSuccess
	case "Salary":
		return ToneWarning
	}
	return ToneError
}

// StatusTone colours a capitalised transaction status.
func StatusTone(status string) Tone {
	if status == "Completed" || status == "Paid" {
		return ToneSuccess
	}
	return ToneWarning
}

// DisplayDate renders a YYYY-MM-DD date as day/month/year without padding,
// e.g. 15/1/2024. Other inputs are returned unchanged.
func DisplayDate(s string) string {
	t, err := time.Parse(validation.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("2/1/2006")
}

// DialogKind is which add dialog is open. It only changes the title.
type DialogKind string

const (
	DialogTransaction DialogKind = "transaction"
	DialogExpense     DialogKind = "expense"
)

func (k DialogKind) Valid() bool {
	return k == DialogTransaction || k == DialogExpense
}

func (k DialogKind) Title() string {
	if k == DialogTransaction {
		return "Add New Transaction"
	}
	return "Add New Expense"
}

// TypeOptions are the selectable transaction types in the add dialog.
var TypeOptions = []string{"Appointment", "Salary", "Expense"}

// TransactionForm is the add transaction/expense dialog form.
type TransactionForm struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

// Validate requires a known type, a numeric amount and a date. The sign of
// the amount is passed through as entered.
func (f TransactionForm) Validate() error {
	var errs validation.Errors
	errs.Required("type", f.Type)
	errs.OneOf("type", f.Type, func(v string) bool {
		return gateway.TransactionType(strings.ToLower(v)).Valid()
	})
	errs.Required("amount", f.Amount)
	if strings.TrimSpace(f.Amount) != "" {
		if _, err := decimal.NewFromString(strings.TrimSpace(f.Amount)); err != nil {
			errs.Add("amount", "must be a number")
		}
	}
	errs.Required("date", f.Date)
	errs.Date("date", f.Date)
	return errs.Err()
}

// transaction builds the record to post. Status is always completed; only
// expenses carry a category.
func (f TransactionForm) transaction() (gateway.Transaction, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return gateway.Transaction{}, fmt.Errorf("parse amount: %w", err)
	}
	t := gateway.Transaction{
		Type:        gateway.TransactionType(strings.ToLower(f.Type)),
		Description: f.Description,
		Amount:      gateway.Amount{Decimal: amount},
		Date:        f.Date,
		Status:      gateway.StatusCompleted,
	}
	if t.Type == gateway.TypeExpense {
		category := "General"
		t.Category = &category
	}
	return t, nil
}
