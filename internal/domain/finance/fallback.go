package finance

import (
	"github.com/shopspring/decimal"

	"github.com/hms/frontdesk/internal/platform/gateway"
)

// The demo dataset shown when the live reads cannot be completed. Expense
// percentages are fixed here, not recomputed.

func rupees(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func monthly(month string, revenue, expenses, profit int64) MonthlyRow {
	return MonthlyRow{Month: month, Revenue: rupees(revenue), Expenses: rupees(expenses), Profit: rupees(profit)}
}

// FallbackData returns a fresh copy of the demo dataset.
func FallbackData() Data {
	return Data{
		MonthlyRevenue: []MonthlyRow{
			monthly("Jan", 45000, 32000, 13000),
			monthly("Feb", 52000, 35000, 17000),
			monthly("Mar", 48000, 33000, 15000),
			monthly("Apr", 61000, 38000, 23000),
			monthly("May", 55000, 36000, 19000),
			monthly("Jun", 67000, 40000, 27000),
		},
		AppointmentEarnings: []EarningRow{
			{Doctor: "Dr. Smith", Specialization: "Cardiology", Patients: 45, Earnings: rupees(22500)},
			{Doctor: "Dr. Johnson", Specialization: "Neurology", Patients: 38, Earnings: rupees(19000)},
			{Doctor: "Dr. Williams", Specialization: "Orthopedics", Patients: 42, Earnings: rupees(21000)},
			{Doctor: "Dr. Brown", Specialization: "Pediatrics", Patients: 35, Earnings: rupees(17500)},
			{Doctor: "Dr. Davis", Specialization: "Dermatology", Patients: 28, Earnings: rupees(14000)},
		},
		Expenses: []ExpenseRow{
			{Category: "Staff Salaries", Amount: rupees(25000), Percentage: 45},
			{Category: "Medical Supplies", Amount: rupees(8000), Percentage: 14},
			{Category: "Equipment Maintenance", Amount: rupees(5000), Percentage: 9},
			{Category: "Utilities", Amount: rupees(3000), Percentage: 5},
			{Category: "Insurance", Amount: rupees(4000), Percentage: 7},
			{Category: "Other", Amount: rupees(5000), Percentage: 9},
		},
		RecentTransactions: []TransactionRow{
			{ID: gateway.NewID("1"), Type: "Appointment", Patient: "John Doe", Amount: rupees(500), Date: "2024-01-15", Status: "Completed"},
			{ID: gateway.NewID("2"), Type: "Salary", Employee: "Dr. Smith", Amount: rupees(8000), Date: "2024-01-14", Status: "Paid"},
			{ID: gateway.NewID("3"), Type: "Expense", Description: "Medical Supplies", Amount: rupees(1200), Date: "2024-01-13", Status: "Processed"},
			{ID: gateway.NewID("4"), Type: "Appointment", Patient: "Jane Smith", Amount: rupees(350), Date: "2024-01-12", Status: "Completed"},
			{ID: gateway.NewID("5"), Type: "Appointment", Patient: "Mike Johnson", Amount: rupees(600), Date: "2024-01-11", Status: "Completed"},
		},
	}
}

// FallbackSummary is the fixed summary paired with FallbackData.
func FallbackSummary() gateway.Summary {
	return gateway.Summary{
		TotalRevenue:      gateway.NewAmount(328000),
		TotalExpenses:     gateway.NewAmount(214000),
		TotalSalary:       gateway.NewAmount(150000),
		TotalAppointments: 188,
		NetProfit:         gateway.NewAmount(114000),
	}
}
