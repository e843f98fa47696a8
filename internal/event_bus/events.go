package event_bus

import "time"

const (
	// EventWageCalculated is published after a wage breakdown has been
	// successfully persisted for a shift.
	EventWageCalculated EventType = "wage.calculated"
)

type WageCalculated struct {
	ShiftId         int
	CompanyId       int
	DriverId        int
	Arrival         time.Time
	Departure       time.Time
	OvertimeMinutes int
	// TotalPay is the rounded total, formatted with two decimal places.
	TotalPay string
}
