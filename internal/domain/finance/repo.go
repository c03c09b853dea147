package finance

import (
	"context"

	"github.com/hms/frontdesk/internal/platform/gateway"
)

// Gateway is the part of the remote data service the dashboard uses.
type Gateway interface {
	Dashboard(ctx context.Context) (*gateway.Aggregate, error)
	Summary(ctx context.Context) (*gateway.Summary, error)
	ListDoctors(ctx context.Context) ([]gateway.Doctor, error)
	ListPatients(ctx context.Context) ([]gateway.Patient, error)
	CreateTransaction(ctx context.Context, t gateway.Transaction) (*gateway.Transaction, error)
}
