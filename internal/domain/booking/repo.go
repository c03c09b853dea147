package booking

import (
	"context"

	"github.com/hms/frontdesk/internal/platform/gateway"
)

// Gateway is the part of the remote data service the booking screen uses.
type Gateway interface {
	ListDoctors(ctx context.Context) ([]gateway.Doctor, error)
	ListDoctorPatients(ctx context.Context, doctorID gateway.ID) ([]gateway.Patient, error)
	CreatePatient(ctx context.Context, doctorID gateway.ID, p gateway.Patient) (*gateway.Patient, error)
	CreateTransaction(ctx context.Context, t gateway.Transaction) (*gateway.Transaction, error)
}
