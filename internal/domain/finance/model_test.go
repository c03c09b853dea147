package finance

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/validation"
)

func decimals(ns ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ns))
	for i, n := range ns {
		out[i] = decimal.NewFromInt(n)
	}
	return out
}

func equalInts(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExpensePercentages(t *testing.T) {
	tests := []struct {
		name    string
		amounts []decimal.Decimal
		want    []int64
	}{
		{"two categories", decimals(45, 55), []int64{45, 55}},
		{"rounding loss", decimals(1, 1, 1), []int64{33, 33, 33}},
		{"rounds half up", decimals(1, 7), []int64{13, 88}},
		{"zero total", decimals(0, 0), []int64{0, 0}},
		{"empty", nil, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpensePercentages(tt.amounts)
			if !equalInts(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func sampleAggregate() *gateway.Aggregate {
	return &gateway.Aggregate{
		MonthlyRevenue: []gateway.MonthlyRevenue{
			{Month: "Jan", Revenue: gateway.NewAmount(1200)},
		},
		AppointmentEarnings: []gateway.DoctorEarning{
			{Doctor: &gateway.DoctorRef{Name: "Dr. Rao", Specialization: "cardiology"}, Patients: 3, Earnings: gateway.NewAmount(1500)},
			{Doctor: nil, Patients: 1, Earnings: gateway.NewAmount(500)},
		},
		ExpenseDistribution: []gateway.ExpenseShare{
			{Category: "Supplies", Amount: gateway.NewAmount(45)},
			{Category: "Rent", Amount: gateway.NewAmount(55)},
		},
		RecentTransactions: []gateway.AggregateTransaction{
			{ID: gateway.NewID("9"), Type: "appointment", Description: "Appointment with Asha", Amount: gateway.NewAmount(500),
				Date: "2024-03-10", Status: "completed", Patient: &gateway.PatientRef{Name: "Asha"}, Doctor: &gateway.DoctorRef{Name: "Dr. Rao"}},
			{ID: gateway.NewID("10"), Type: "expense", Description: "Gloves", Amount: gateway.NewAmount(80), Date: "2024-03-11", Status: "pending"},
		},
	}
}

func TestReshape(t *testing.T) {
	d, err := Reshape(sampleAggregate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := d.MonthlyRevenue[0]
	if !m.Expenses.IsZero() || !m.Profit.Equal(m.Revenue) {
		t.Errorf("expected zero expenses and profit = revenue, got %+v", m)
	}

	if d.AppointmentEarnings[0].Doctor != "Dr. Rao" || d.AppointmentEarnings[0].Patients != 3 {
		t.Errorf("unexpected earnings row %+v", d.AppointmentEarnings[0])
	}
	missing := d.AppointmentEarnings[1]
	if missing.Doctor != "Unknown Doctor" || missing.Specialization != "General" {
		t.Errorf("expected placeholders for missing doctor, got %+v", missing)
	}

	if d.Expenses[0].Percentage != 45 || d.Expenses[1].Percentage != 55 {
		t.Errorf("unexpected percentages %+v", d.Expenses)
	}

	r := d.RecentTransactions[0]
	if r.Type != "Appointment" || r.Status != "Completed" || r.Patient != "Asha" || r.Employee != "Dr. Rao" {
		t.Errorf("unexpected recent row %+v", r)
	}
	r = d.RecentTransactions[1]
	if r.Type != "Expense" || r.Status != "Pending" || r.Patient != "Gloves" || r.Employee != "" {
		t.Errorf("expected description as patient fallback, got %+v", r)
	}
}

func TestReshape_MissingSection(t *testing.T) {
	agg := sampleAggregate()
	agg.ExpenseDistribution = nil
	if _, err := Reshape(agg); err == nil {
		t.Error("expected error for missing section")
	}
	if _, err := Reshape(nil); err == nil {
		t.Error("expected error for nil aggregate")
	}
}

func TestReshape_EmptySectionsAreValid(t *testing.T) {
	agg := &gateway.Aggregate{
		MonthlyRevenue:      []gateway.MonthlyRevenue{},
		AppointmentEarnings: []gateway.DoctorEarning{},
		ExpenseDistribution: []gateway.ExpenseShare{},
		RecentTransactions:  []gateway.AggregateTransaction{},
	}
	if _, err := Reshape(agg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFallbackSummary(t *testing.T) {
	s := FallbackSummary()
	checks := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{"totalRevenue", s.TotalRevenue.Decimal, 328000},
		{"totalExpenses", s.TotalExpenses.Decimal, 214000},
		{"totalSalary", s.TotalSalary.Decimal, 150000},
		{"netProfit", s.NetProfit.Decimal, 114000},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s: expected %d, got %s", c.name, c.want, c.got)
		}
	}
	if s.TotalAppointments != 188 {
		t.Errorf("expected 188 appointments, got %d", s.TotalAppointments)
	}
}

func TestFallbackData(t *testing.T) {
	d := FallbackData()
	if len(d.MonthlyRevenue) != 6 || len(d.AppointmentEarnings) != 5 || len(d.Expenses) != 6 || len(d.RecentTransactions) != 5 {
		t.Fatalf("unexpected fallback sizes %d/%d/%d/%d",
			len(d.MonthlyRevenue), len(d.AppointmentEarnings), len(d.Expenses), len(d.RecentTransactions))
	}
	if d.Expenses[0].Percentage != 45 || d.Expenses[3].Percentage != 5 {
		t.Error("expected fixed demo percentages")
	}
	names := []string{"John Doe", "Dr. Smith", "Medical Supplies", "Jane Smith", "Mike Johnson"}
	for i, want := range names {
		if got := d.RecentTransactions[i].Counterparty(); got != want {
			t.Errorf("row %d: expected %s, got %s", i, want, got)
		}
	}

	d.MonthlyRevenue[0].Month = "changed"
	if FallbackData().MonthlyRevenue[0].Month != "Jan" {
		t.Error("expected a fresh copy per call")
	}
}

func TestDerive(t *testing.T) {
	s := Snapshot{
		Summary:  FallbackSummary(),
		Doctors:  []gateway.Doctor{{ID: gateway.NewID("1")}},
		Patients: []gateway.Patient{{ID: gateway.NewID("1")}, {ID: gateway.NewID("2")}, {ID: gateway.NewID("3")}, {ID: gateway.NewID("4")}},
	}
	f := Derive(s)
	if !f.TotalExpenses.Equal(decimal.NewFromInt(364000)) {
		t.Errorf("expected expenses + salary = 364000, got %s", f.TotalExpenses)
	}
	if f.ProfitMargin.StringFixed(1) != "34.8" {
		t.Errorf("expected margin 34.8, got %s", f.ProfitMargin.StringFixed(1))
	}
	if !f.RevenuePerPatient.Equal(decimal.NewFromInt(82000)) {
		t.Errorf("expected 82000 per patient, got %s", f.RevenuePerPatient)
	}
	if f.DoctorCount != 1 || f.PatientCount != 4 || f.TotalAppointments != 188 {
		t.Errorf("unexpected counts %+v", f)
	}
}

func TestDerive_NoRevenueNoPatients(t *testing.T) {
	f := Derive(Snapshot{Summary: gateway.Summary{NetProfit: gateway.NewAmount(-100)}})
	if !f.ProfitMargin.IsZero() || !f.RevenuePerPatient.IsZero() {
		t.Errorf("expected zero margin and per-patient revenue, got %+v", f)
	}
}

func TestTones(t *testing.T) {
	typeTones := map[string]Tone{"Appointment": ToneSuccess, "Salary": ToneWarning, "Expense": ToneError, "Refund": ToneError}
	for typ, want := range typeTones {
		if got := TypeTone(typ); got != want {
			t.Errorf("TypeTone(%s) = %s, want %s", typ, got, want)
		}
	}
	statusTones := map[string]Tone{"Completed": ToneSuccess, "Paid": ToneSuccess, "Processed": ToneWarning, "Pending": ToneWarning}
	for st, want := range statusTones {
		if got := StatusTone(st); got != want {
			t.Errorf("StatusTone(%s) = %s, want %s", st, got, want)
		}
	}
}

func TestDisplayDate(t *testing.T) {
	tests := map[string]string{
		"2024-01-15": "15/1/2024",
		"2024-11-05": "5/11/2024",
		"yesterday":  "yesterday",
	}
	for in, want := range tests {
		if got := DisplayDate(in); got != want {
			t.Errorf("DisplayDate(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestTab(t *testing.T) {
	for i, label := range []string{"Overview", "Analytics", "Transactions", "Reports"} {
		if Tab(i).Label() != label || !Tab(i).Valid() {
			t.Errorf("tab %d: expected %s", i, label)
		}
	}
	if Tab(4).Valid() || Tab(-1).Valid() {
		t.Error("expected out-of-range tabs to be invalid")
	}
}

func TestDialogKind_Title(t *testing.T) {
	if DialogTransaction.Title() != "Add New Transaction" || DialogExpense.Title() != "Add New Expense" {
		t.Error("unexpected dialog titles")
	}
	if DialogKind("refund").Valid() {
		t.Error("expected unknown kind to be invalid")
	}
}

func TestTransactionForm_Validate(t *testing.T) {
	valid := TransactionForm{Type: "Salary", Description: "March payroll", Amount: "8000", Date: "2024-03-31"}
	tests := []struct {
		name   string
		mutate func(*TransactionForm)
		fields []string
	}{
		{"valid", func(*TransactionForm) {}, nil},
		{"lowercase type", func(f *TransactionForm) { f.Type = "expense" }, nil},
		{"decimal amount", func(f *TransactionForm) { f.Amount = "1200.50" }, nil},
		{"no description", func(f *TransactionForm) { f.Description = "" }, nil},
		{"unknown type", func(f *TransactionForm) { f.Type = "Refund" }, []string{"type"}},
		{"missing amount", func(f *TransactionForm) { f.Amount = "" }, []string{"amount"}},
		{"text amount", func(f *TransactionForm) { f.Amount = "lots" }, []string{"amount"}},
		{"negative amount", func(f *TransactionForm) { f.Amount = "-5" }, nil},
		{"bad date", func(f *TransactionForm) { f.Date = "31-03-2024" }, []string{"date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			got := validation.Fields(f.Validate())
			if len(got) != len(tt.fields) {
				t.Fatalf("expected fields %v, got %+v", tt.fields, got)
			}
			for i, field := range tt.fields {
				if got[i].Field != field {
					t.Errorf("expected field %s, got %s", field, got[i].Field)
				}
			}
		})
	}
}

func TestTransactionForm_Transaction(t *testing.T) {
	tests := []struct {
		typ      string
		wantType gateway.TransactionType
		category bool
	}{
		{"Expense", gateway.TypeExpense, true},
		{"expense", gateway.TypeExpense, true},
		{"Salary", gateway.TypeSalary, false},
		{"Appointment", gateway.TypeAppointment, false},
	}
	for _, tt := range tests {
		f := TransactionForm{Type: tt.typ, Description: "x", Amount: "12.5", Date: "2024-03-31"}
		tx, err := f.transaction()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.typ, err)
		}
		if tx.Type != tt.wantType || tx.Status != gateway.StatusCompleted {
			t.Errorf("%s: unexpected type/status %s/%s", tt.typ, tx.Type, tx.Status)
		}
		if tt.category && (tx.Category == nil || *tx.Category != "General") {
			t.Errorf("%s: expected General category", tt.typ)
		}
		if !tt.category && tx.Category != nil {
			t.Errorf("%s: expected no category", tt.typ)
		}
		if tx.Amount.String() != "12.5" {
			t.Errorf("%s: expected amount 12.5, got %s", tt.typ, tx.Amount)
		}
	}
}
