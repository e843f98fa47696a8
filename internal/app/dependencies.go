package app

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fleetwage/fleetwage/internal/config"
	"github.com/fleetwage/fleetwage/internal/event_bus"
	"github.com/fleetwage/fleetwage/internal/utils"
	"github.com/fleetwage/fleetwage/pkg/holiday"
	"github.com/fleetwage/fleetwage/pkg/payrate"
	"github.com/fleetwage/fleetwage/pkg/wage"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	PayRateRepo     payrate.PayRateRepo
	PayRateResolver *payrate.ResolverImpl

	HolidayRepo   holiday.Repository
	HolidayClient holiday.Client
	HolidayCache  *holiday.FeedCache
	HolidayOracle *holiday.OracleImpl

	WageRepo    wage.Repository
	WageService *wage.ServiceImpl
	WageHandler *wage.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	location, err := time.LoadLocation(cfg.Payroll.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid payroll timezone %q: %w", cfg.Payroll.Timezone, err)
	}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.PayRateRepo = payrate.NewPayRateRepo(db)
	deps.PayRateResolver = payrate.NewResolver(deps.PayRateRepo)

	deps.HolidayRepo = holiday.NewRepository(db)
	deps.HolidayClient = holiday.NewClient(cfg.Holidays.FeedURL, cfg.Holidays.Region)
	deps.HolidayCache = holiday.NewFeedCache(time.Duration(cfg.Holidays.CacheTTLHours)*time.Hour, deps.Clock)
	deps.HolidayOracle = holiday.NewOracle(deps.HolidayRepo, deps.HolidayClient, deps.HolidayCache)

	deps.WageRepo = wage.NewRepository(db)
	deps.WageService = wage.NewService(deps.WageRepo, deps.PayRateResolver, deps.HolidayOracle,
		location, deps.EventBus, deps.Clock)
	deps.WageHandler = wage.NewHandler(deps.WageService)

	event_bus.SubscribeTyped[event_bus.WageCalculated](deps.EventBus, event_bus.EventWageCalculated,
		func(e event_bus.EventT[event_bus.WageCalculated]) error {
			log.Infof("Calculated wages for shift %d (driver %d): total %s, overtime %d min",
				e.Data.ShiftId, e.Data.DriverId, e.Data.TotalPay, e.Data.OvertimeMinutes)
			return nil
		})

	return deps, nil
}
