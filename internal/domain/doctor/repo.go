package doctor

import (
	"context"

	"github.com/hms/frontdesk/internal/platform/gateway"
)

// Gateway is the part of the remote data service the directory uses.
type Gateway interface {
	ListDoctors(ctx context.Context) ([]gateway.Doctor, error)
	CreateDoctor(ctx context.Context, d gateway.Doctor) (*gateway.Doctor, error)
	UpdateDoctor(ctx context.Context, id gateway.ID, d gateway.Doctor) (*gateway.Doctor, error)
	DeleteDoctor(ctx context.Context, id gateway.ID) error
}

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
