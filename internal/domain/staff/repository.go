package staff

import "context"

// Repository is the read-only lookup the cores need; staff rows are owned
// by the administration subsystem and never mutated here.
type Repository interface {
	GetByID(ctx context.Context, id string) (Staff, error)
}
