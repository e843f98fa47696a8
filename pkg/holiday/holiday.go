package holiday

import (
	"time"
)

// BankHoliday is a locally stored, jurisdiction-recognized non-working
// calendar date. Rows are either imported from the public feed or
// entered as a local override for a company.
type BankHoliday struct {
	ID        int
	CompanyId int
	Name      string
	Date      time.Time
	Recurring bool
}
