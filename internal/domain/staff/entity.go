package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff is the read-side projection of a staff member that the time and
// payroll cores depend on. Staff administration itself lives elsewhere.
type Staff struct {
	ID                  string
	FullName            string
	BaseSalary          decimal.Decimal
	OvertimeRatePerHour decimal.Decimal
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
