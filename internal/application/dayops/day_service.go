package dayops

import (
	"context"
	"time"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/dayops"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DayService drives the business day lifecycle: OPEN → CLOSED → LOCKED.
type DayService struct {
	scope  TransactionScope
	audit  audit.Sink
	logger *zap.Logger
}

// NewDayService creates a new DayService
func NewDayService(scope TransactionScope, sink audit.Sink, logger *zap.Logger) *DayService {
	return &DayService{
		scope:  scope,
		audit:  sink,
		logger: logger,
	}
}

// Status reports today's day status. A date with no row reads as CLOSED.
func (s *DayService) Status(ctx context.Context) (*DayStatusResponse, error) {
	date := today()
	resp := &DayStatusResponse{
		BusinessDate: date.Format("2006-01-02"),
		Status:       dayops.DayStatusClosed.String(),
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindByDate(ctx, date)
		if err != nil {
			return err
		}
		if day != nil {
			resp.Status = day.Status.String()
			resp.HasDayRecord = true
			resp.Day = toDayResponse(day)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Open opens today's business day and seeds the per-customer balance
// snapshots from the previous day's closing balances. Fails if a row for
// today already exists or another day is still OPEN.
func (s *DayService) Open(ctx context.Context, actor identity.Principal) (*DayResponse, error) {
	date := today()
	var opened *dayops.BusinessDay

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		open, err := repos.Days().FindOpen(ctx)
		if err != nil {
			return err
		}
		if open != nil {
			return shared.NewDomainError("DAY_ALREADY_OPEN", "Another day is already OPEN")
		}

		existing, err := repos.Days().FindByDate(ctx, date)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.ErrDayAlreadyExists
		}

		day, err := dayops.NewBusinessDay(date)
		if err != nil {
			return err
		}
		if err := repos.Days().Create(ctx, day); err != nil {
			return err
		}

		if err := s.seedDailyBalances(ctx, repos, date); err != nil {
			return err
		}

		opened = day
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("business day opened",
		zap.String("business_date", date.Format("2006-01-02")),
		zap.String("opened_by", actor.Username))
	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionDayOpen), "day_status", opened.ID.String(), nil))

	return toDayResponse(opened), nil
}

// Close attempts to close the OPEN day. It is a two-phase gate: first every
// product must have complete morning and closing entries, then every product
// with a positive shortage must carry a justification. The day stays OPEN
// when either phase rejects; the rejection is a payload, not an error.
func (s *DayService) Close(ctx context.Context, actor identity.Principal) (*CloseDayResult, error) {
	var result *CloseDayResult

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindOpen(ctx)
		if err != nil {
			return err
		}
		if day == nil {
			return shared.ErrNoOpenDay
		}

		products, err := repos.Products().FindAllActive(ctx)
		if err != nil {
			return err
		}
		stocks, err := repos.Stocks().FindByDay(ctx, day.ID)
		if err != nil {
			return err
		}
		byProduct := make(map[uuid.UUID]*dayops.ProductDailyStock, len(stocks))
		for i := range stocks {
			byProduct[stocks[i].ProductID] = &stocks[i]
		}

		var incomplete []BlockingProduct
		for _, p := range products {
			stock := byProduct[p.ID]
			switch {
			case stock == nil || !stock.MorningComplete():
				incomplete = append(incomplete, BlockingProduct{ProductID: p.ID, ProductName: p.Name, Missing: "morning"})
			case !stock.ClosingComplete():
				incomplete = append(incomplete, BlockingProduct{ProductID: p.ID, ProductName: p.Name, Missing: "closing"})
			}
		}
		if len(incomplete) > 0 {
			result = &CloseDayResult{Status: CloseResultIncompleteStock, Products: incomplete}
			return nil
		}

		sold, err := repos.Sales().SumQuantityByDay(ctx, day.ID)
		if err != nil {
			return err
		}

		var unjustified []BlockingProduct
		for _, p := range products {
			stock := byProduct[p.ID]
			// Any nonzero shortage needs a justification, overages included.
			shortage := dayops.ComputeShortage(stock, sold[p.ID])
			if shortage.IsZero() {
				continue
			}
			exists, err := repos.Shortages().Exists(ctx, day.ID, p.ID)
			if err != nil {
				return err
			}
			if !exists {
				sh := shortage
				unjustified = append(unjustified, BlockingProduct{ProductID: p.ID, ProductName: p.Name, Shortage: &sh})
			}
		}
		if len(unjustified) > 0 {
			result = &CloseDayResult{Status: CloseResultJustificationRequired, Products: unjustified}
			return nil
		}

		if err := day.Close(); err != nil {
			return err
		}
		if err := repos.Days().Save(ctx, day); err != nil {
			return err
		}
		result = &CloseDayResult{Status: CloseResultClosed, Day: toDayResponse(day)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == CloseResultClosed {
		s.logger.Info("business day closed", zap.String("closed_by", actor.Username))
		s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
			string(identity.ActionDayClose), "day_status", result.Day.ID.String(), nil))
	}
	return result, nil
}

// Lock locks the most recent day. The day must already be CLOSED.
func (s *DayService) Lock(ctx context.Context, actor identity.Principal) (*DayResponse, error) {
	var locked *dayops.BusinessDay

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindLatest(ctx)
		if err != nil {
			return err
		}
		if day == nil {
			return shared.NewDomainError("NO_DAY", "No business day exists")
		}
		if err := day.Lock(); err != nil {
			return err
		}
		if err := repos.Days().Save(ctx, day); err != nil {
			return err
		}
		locked = day
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("business day locked",
		zap.String("business_date", locked.BusinessDate.Format("2006-01-02")),
		zap.String("locked_by", actor.Username))
	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionDayLock), "day_status", locked.ID.String(), nil))

	return toDayResponse(locked), nil
}

// seedDailyBalances snapshots every customer's opening balance for the new
// day from the previous day's closing balance, zero when none exists. The
// insert ignores conflicts so a replayed open stays idempotent.
func (s *DayService) seedDailyBalances(ctx context.Context, repos TransactionalRepositories, date time.Time) error {
	customerIDs, err := repos.Customers().FindAllIDs(ctx)
	if err != nil {
		return err
	}
	prevDate := date.AddDate(0, 0, -1)

	for _, customerID := range customerIDs {
		opening := decimal.Zero
		prev, err := repos.Balances().FindByDateAndCustomer(ctx, prevDate, customerID)
		if err != nil {
			return err
		}
		if prev != nil {
			opening = prev.ClosingBalance
		}
		balance, err := dayops.NewCustomerDailyBalance(date, customerID, opening)
		if err != nil {
			return err
		}
		if err := repos.Balances().SeedIgnoreConflict(ctx, balance); err != nil {
			return err
		}
	}
	return nil
}

// today returns the current calendar date at midnight UTC.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
