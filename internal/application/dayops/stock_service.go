package dayops

import (
	"context"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/dayops"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService records the two write-once phases of each product's daily
// stock row and serves the read views built on top of them.
type StockService struct {
	scope  TransactionScope
	audit  audit.Sink
	logger *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(scope TransactionScope, sink audit.Sink, logger *zap.Logger) *StockService {
	return &StockService{
		scope:  scope,
		audit:  sink,
		logger: logger,
	}
}

// RecordMorning records a product's plant load and counter opening for the
// OPEN day. The stock row is locked for the duration of the transaction so
// concurrent submissions for the same product serialize.
func (s *StockService) RecordMorning(ctx context.Context, actor identity.Principal, req RecordMorningRequest) (*StockRowResponse, error) {
	var resp *StockRowResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindOpen(ctx)
		if err != nil {
			return err
		}
		if day == nil {
			return shared.ErrNoOpenDay
		}

		product, err := activeProduct(ctx, repos.Products(), req.ProductID)
		if err != nil {
			return err
		}

		stock, err := repos.Stocks().FindForUpdate(ctx, day.ID, product.ID)
		if err != nil {
			return err
		}
		if stock == nil {
			stock, err = dayops.NewProductDailyStock(day.ID, product.ID)
			if err != nil {
				return err
			}
		}

		prevClosing, err := repos.Stocks().PrevCounterClosing(ctx, product.ID, day.BusinessDate)
		if err != nil {
			return err
		}

		if err := stock.RecordMorning(req.PlantLoadQty, req.CounterOpeningQty, prevClosing, actor.UserID); err != nil {
			return err
		}
		if err := repos.Stocks().Save(ctx, stock); err != nil {
			return err
		}

		resp = toStockRowResponse(product, stock, prevClosing)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("morning stock recorded",
		zap.String("product_id", req.ProductID.String()),
		zap.String("entered_by", actor.Username))
	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionStockEntry), "daily_product_stock", req.ProductID.String(),
		map[string]any{"phase": "morning", "plant_load_qty": req.PlantLoadQty.String()}))

	return resp, nil
}

// RecordClosing records a product's counter closing and plant return for the
// OPEN day. The morning phase must already be complete.
func (s *StockService) RecordClosing(ctx context.Context, actor identity.Principal, req RecordClosingRequest) (*StockRowResponse, error) {
	var resp *StockRowResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindOpen(ctx)
		if err != nil {
			return err
		}
		if day == nil {
			return shared.ErrNoOpenDay
		}

		product, err := activeProduct(ctx, repos.Products(), req.ProductID)
		if err != nil {
			return err
		}

		stock, err := repos.Stocks().FindForUpdate(ctx, day.ID, product.ID)
		if err != nil {
			return err
		}
		if stock == nil {
			return shared.NewDomainError("MORNING_NOT_COMPLETED", "Morning stock not completed for this product")
		}

		if err := stock.RecordClosing(req.CounterClosingQty, req.ReturnedToPlantQty, actor.UserID); err != nil {
			return err
		}
		if err := repos.Stocks().Save(ctx, stock); err != nil {
			return err
		}

		prevClosing, err := repos.Stocks().PrevCounterClosing(ctx, product.ID, day.BusinessDate)
		if err != nil {
			return err
		}
		resp = toStockRowResponse(product, stock, prevClosing)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("closing stock recorded",
		zap.String("product_id", req.ProductID.String()),
		zap.String("entered_by", actor.Username))
	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionStockEntry), "daily_product_stock", req.ProductID.String(),
		map[string]any{"phase": "closing", "counter_closing_qty": req.CounterClosingQty.String()}))

	return resp, nil
}

// Availability reports how much of a product can still be sold on the OPEN
// day: previous closing + plant load − counter opening − sold, clamped at
// zero. Missing entries count as zero.
func (s *StockService) Availability(ctx context.Context, productID uuid.UUID) (*AvailabilityResponse, error) {
	var resp *AvailabilityResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindOpen(ctx)
		if err != nil {
			return err
		}
		if day == nil {
			return shared.ErrNoOpenDay
		}

		product, err := activeProduct(ctx, repos.Products(), productID)
		if err != nil {
			return err
		}

		stock, err := repos.Stocks().Find(ctx, day.ID, product.ID)
		if err != nil {
			return err
		}
		if stock == nil {
			stock = &dayops.ProductDailyStock{DayID: day.ID, ProductID: product.ID}
		}

		prevClosing, err := repos.Stocks().PrevCounterClosing(ctx, product.ID, day.BusinessDate)
		if err != nil {
			return err
		}
		sold, err := repos.Sales().SumQuantityByDayAndProduct(ctx, day.ID, product.ID)
		if err != nil {
			return err
		}

		resp = &AvailabilityResponse{
			ProductID:          product.ID,
			PrevCounterClosing: prevClosing,
			PlantLoad:          qtyValue(stock.PlantLoadQty),
			CounterOpening:     qtyValue(stock.CounterOpeningQty),
			Sold:               sold,
			Available:          dayops.AvailableQuantity(stock, prevClosing, sold),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DailyStock lists every active product's stock row for the OPEN day,
// including the previous day's closing for the entry screens.
func (s *StockService) DailyStock(ctx context.Context) ([]StockRowResponse, error) {
	var rows []StockRowResponse

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
		byProduct := stocksByProduct(stocks)

		rows = make([]StockRowResponse, 0, len(products))
		for i := range products {
			p := &products[i]
			prevClosing, err := repos.Stocks().PrevCounterClosing(ctx, p.ID, day.BusinessDate)
			if err != nil {
				return err
			}
			stock := byProduct[p.ID]
			if stock == nil {
				stock = &dayops.ProductDailyStock{DayID: day.ID, ProductID: p.ID}
			}
			rows = append(rows, *toStockRowResponse(p, stock, prevClosing))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Reconciliation builds the per-product end-of-day view for the OPEN day.
// Shortage always comes from the single shared formula.
func (s *StockService) Reconciliation(ctx context.Context) ([]ReconciliationRow, error) {
	var rows []ReconciliationRow

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
		byProduct := stocksByProduct(stocks)

		sold, err := repos.Sales().SumQuantityByDay(ctx, day.ID)
		if err != nil {
			return err
		}
		justifications, err := repos.Shortages().FindByDay(ctx, day.ID)
		if err != nil {
			return err
		}
		reasonByProduct := make(map[uuid.UUID]string, len(justifications))
		for _, j := range justifications {
			reasonByProduct[j.ProductID] = j.Reason
		}

		rows = make([]ReconciliationRow, 0, len(products))
		for i := range products {
			p := &products[i]
			stock := byProduct[p.ID]
			if stock == nil {
				stock = &dayops.ProductDailyStock{DayID: day.ID, ProductID: p.ID}
			}
			prevClosing, err := repos.Stocks().PrevCounterClosing(ctx, p.ID, day.BusinessDate)
			if err != nil {
				return err
			}

			shortage := dayops.ComputeShortage(stock, sold[p.ID])
			reason, justified := reasonByProduct[p.ID]
			rows = append(rows, ReconciliationRow{
				ProductID:          p.ID,
				ProductName:        p.Name,
				PrevCounterClosing: prevClosing,
				PlantLoad:          qtyValue(stock.PlantLoadQty),
				TotalOpening:       prevClosing.Add(qtyValue(stock.PlantLoadQty)),
				CounterOpening:     qtyValue(stock.CounterOpeningQty),
				Sold:               sold[p.ID],
				CounterClosing:     qtyValue(stock.CounterClosingQty),
				Returned:           qtyValue(stock.ReturnedToPlantQty),
				Shortage:           shortage,
				HasShortage:        !shortage.IsZero(),
				Justified:          justified,
				Reason:             reason,
				MorningComplete:    stock.MorningComplete(),
				ClosingComplete:    stock.ClosingComplete(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func activeProduct(ctx context.Context, products catalog.ProductRepository, productID uuid.UUID) (*catalog.Product, error) {
	product, err := products.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found or inactive")
	}
	return product, nil
}

func stocksByProduct(stocks []dayops.ProductDailyStock) map[uuid.UUID]*dayops.ProductDailyStock {
	m := make(map[uuid.UUID]*dayops.ProductDailyStock, len(stocks))
	for i := range stocks {
		m[stocks[i].ProductID] = &stocks[i]
	}
	return m
}

func toStockRowResponse(product *catalog.Product, stock *dayops.ProductDailyStock, prevClosing decimal.Decimal) *StockRowResponse {
	return &StockRowResponse{
		ProductID:          product.ID,
		ProductName:        product.Name,
		Unit:               product.Unit,
		PrevCounterClosing: prevClosing,
		PlantLoadQty:       stock.PlantLoadQty,
		CounterOpeningQty:  stock.CounterOpeningQty,
		CounterClosingQty:  stock.CounterClosingQty,
		ReturnedToPlantQty: stock.ReturnedToPlantQty,
		MorningComplete:    stock.MorningComplete(),
		ClosingComplete:    stock.ClosingComplete(),
	}
}

func qtyValue(q *decimal.Decimal) decimal.Decimal {
	if q == nil {
		return decimal.Zero
	}
	return *q
}
