package finance

import (
	"strconv"

	"github.com/hms/frontdesk/internal/platform/format"
	"github.com/hms/frontdesk/internal/platform/notice"
)

const recentActivityLimit = 5

// View is the rendered dashboard. Only the selected tab's section is set.
type View struct {
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle"`
	Loading      bool              `json:"loading"`
	Source       Source            `json:"source,omitempty"`
	Tabs         []TabOption       `json:"tabs"`
	Tab          Tab               `json:"tab"`
	Overview     *OverviewView     `json:"overview,omitempty"`
	Analytics    *AnalyticsView    `json:"analytics,omitempty"`
	Transactions *TransactionsView `json:"transactions,omitempty"`
	Reports      *ReportsView      `json:"reports,omitempty"`
	Dialog       *DialogView       `json:"dialog,omitempty"`
	Message      *notice.Message   `json:"message,omitempty"`
}

type TabOption struct {
	Index    Tab    `json:"index"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Metric is a headline card.
type Metric struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Caption string `json:"caption"`
}

// Stat is a label/value line.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ActivityRow struct {
	Initial string `json:"initial"`
	Tone    Tone   `json:"tone"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Amount  string `json:"amount"`
	Credit  bool   `json:"credit"`
}

type OverviewView struct {
	Metrics        []Metric      `json:"metrics"`
	Statistics     []Stat        `json:"statistics"`
	RecentActivity []ActivityRow `json:"recent_activity"`
}

type TrendPoint struct {
	Month    string `json:"month"`
	Revenue  string `json:"revenue"`
	Expenses string `json:"expenses"`
	Axis     string `json:"axis"`
}

type ExpenseSlice struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage int64  `json:"percentage"`
	Label      string `json:"label"`
}

type EarningBar struct {
	Doctor         string `json:"doctor"`
	Specialization string `json:"specialization"`
	Patients       int64  `json:"patients"`
	Earnings       string `json:"earnings"`
}

type AnalyticsView struct {
	Trend    []TrendPoint   `json:"trend"`
	Expenses []ExpenseSlice `json:"expenses"`
	Earnings []EarningBar   `json:"earnings"`
}

type TransactionLine struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	TypeTone   Tone   `json:"type_tone"`
	Initial    string `json:"initial"`
	Name       string `json:"name"`
	Employee   string `json:"employee,omitempty"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	StatusTone Tone   `json:"status_tone"`
}

type TransactionsView struct {
	Actions []DialogKind      `json:"actions"`
	Rows    []TransactionLine `json:"rows"`
}

type ReportsView struct {
	FinancialSummary    []Stat `json:"financial_summary"`
	HospitalPerformance []Stat `json:"hospital_performance"`
}

type DialogView struct {
	Kind        DialogKind      `json:"kind"`
	Title       string          `json:"title"`
	TypeOptions []string        `json:"type_options"`
	Form        TransactionForm `json:"form"`
	SaveLabel   string          `json:"save_label"`
}

func (d *Dashboard) View() View {
	v := View{
		Title:    "Financial Dashboard",
		Subtitle: "Hospital Revenue & Expense Management System",
		Loading:  d.loading,
		Tab:      d.tab,
	}
	for _, t := range Tabs() {
		v.Tabs = append(v.Tabs, TabOption{Index: t, Label: t.Label(), Selected: t == d.tab})
	}
	if !d.message.IsZero() {
		m := d.message
		v.Message = &m
	}
	if d.dialog != nil {
		v.Dialog = &DialogView{
			Kind:        d.dialog.Kind,
			Title:       d.dialog.Kind.Title(),
			TypeOptions: TypeOptions,
			Form:        d.dialog.Form,
			SaveLabel:   "Save Transaction",
		}
	}
	if d.loading {
		return v
	}

	v.Source = d.snapshot.Source
	fig := Derive(d.snapshot)
	switch d.tab {
	case Overview:
		v.Overview = overview(d.snapshot, fig)
	case Analytics:
		v.Analytics = analytics(d.snapshot.Data)
	case Transactions:
		v.Transactions = transactions(d.snapshot.Data)
	case Reports:
		v.Reports = reports(fig)
	}
	return v
}

func overview(s Snapshot, fig Figures) *OverviewView {
	o := &OverviewView{
		Metrics: []Metric{
			{Label: "Total Revenue", Value: format.Currency(fig.TotalRevenue), Caption: format.Compact(fig.TotalRevenue) + " INR"},
			{Label: "Total Expenses", Value: format.Currency(fig.TotalExpenses), Caption: format.Compact(fig.TotalExpenses) + " INR"},
			{Label: "Net Profit", Value: format.Currency(fig.NetProfit), Caption: format.Compact(fig.NetProfit) + " INR"},
			{Label: "Total Appointments", Value: strconv.FormatInt(fig.TotalAppointments, 10), Caption: "Patients Served"},
		},
		Statistics: []Stat{
			{Label: "Total Doctors", Value: strconv.Itoa(fig.DoctorCount)},
			{Label: "Total Patients", Value: strconv.Itoa(fig.PatientCount)},
			{Label: "Avg. Revenue/Patient", Value: format.Currency(fig.RevenuePerPatient)},
		},
		RecentActivity: []ActivityRow{},
	}
	recent := s.Data.RecentTransactions
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	for _, r := range recent {
		o.RecentActivity = append(o.RecentActivity, ActivityRow{
			Initial: initial(r.Type),
			Tone:    TypeTone(r.Type),
			Name:    r.Counterparty(),
			Date:    r.Date,
			Amount:  format.Currency(r.Amount),
			Credit:  r.Amount.IsPositive(),
		})
	}
	return o
}

func analytics(data Data) *AnalyticsView {
	a := &AnalyticsView{
		Trend:    make([]TrendPoint, 0, len(data.MonthlyRevenue)),
		Expenses: make([]ExpenseSlice, 0, len(data.Expenses)),
		Earnings: make([]EarningBar, 0, len(data.AppointmentEarnings)),
	}
	for _, m := range data.MonthlyRevenue {
		a.Trend = append(a.Trend, TrendPoint{
			Month:    m.Month,
			Revenue:  format.Currency(m.Revenue),
			Expenses: format.Currency(m.Expenses),
			Axis:     format.Compact(m.Revenue),
		})
	}
	for _, e := range data.Expenses {
		a.Expenses = append(a.Expenses, ExpenseSlice{
			Category:   e.Category,
			Amount:     format.Currency(e.Amount),
			Percentage: e.Percentage,
			Label:      e.Category + " (" + strconv.FormatInt(e.Percentage, 10) + "%)",
		})
	}
	for _, e := range data.AppointmentEarnings {
		a.Earnings = append(a.Earnings, EarningBar{
			Doctor:         e.Doctor,
			Specialization: e.Specialization,
			Patients:       e.Patients,
			Earnings:       format.Currency(e.Earnings),
		})
	}
	return a
}

func transactions(data Data) *TransactionsView {
	t := &TransactionsView{
		Actions: []DialogKind{DialogTransaction, DialogExpense},
		Rows:    make([]TransactionLine, 0, len(data.RecentTransactions)),
	}
	for _, r := range data.RecentTransactions {
		t.Rows = append(t.Rows, TransactionLine{
			ID:         r.ID.String(),
			Type:       r.Type,
			TypeTone:   TypeTone(r.Type),
			Initial:    initial(r.Type),
			Name:       r.Counterparty(),
			Employee:   r.Employee,
			Amount:     format.Currency(r.Amount),
			Date:       DisplayDate(r.Date),
			Status:     r.Status,
			StatusTone: StatusTone(r.Status),
		})
	}
	return t
}

func reports(fig Figures) *ReportsView {
	margin := "0%"
	if fig.TotalRevenue.IsPositive() {
		margin = fig.ProfitMargin.StringFixed(1) + "%"
	}
	return &ReportsView{
		FinancialSummary: []Stat{
			{Label: "Total Revenue", Value: format.Currency(fig.TotalRevenue)},
			{Label: "Total Expenses", Value: format.Currency(fig.TotalExpenses)},
			{Label: "Net Profit", Value: format.Currency(fig.NetProfit)},
			{Label: "Profit Margin", Value: margin},
		},
		HospitalPerformance: []Stat{
			{Label: "Total Doctors", Value: strconv.Itoa(fig.DoctorCount)},
			{Label: "Total Patients", Value: strconv.Itoa(fig.PatientCount)},
			{Label: "Total Appointments", Value: strconv.FormatInt(fig.TotalAppointments, 10)},
			{Label: "Avg. Revenue per Patient", Value: format.Currency(fig.RevenuePerPatient)},
		},
	}
}

func initial(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
