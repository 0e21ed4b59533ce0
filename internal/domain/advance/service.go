package advance

import (
	"context"
)

type Service interface {
	// ListByStaff returns a staff member's advances with their settlement
	// state, newest first.
	ListByStaff(ctx context.Context, staffID string) (ListAdvancesResponse, error)
}
