package dayops

import (
	"context"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/dayops"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShortageService records justifications for stock shortages. The shortage
// quantity is always recomputed server-side from the stock row and the day's
// sales, never trusted from the request.
type ShortageService struct {
	scope  TransactionScope
	audit  audit.Sink
	logger *zap.Logger
}

// NewShortageService creates a new ShortageService
func NewShortageService(scope TransactionScope, sink audit.Sink, logger *zap.Logger) *ShortageService {
	return &ShortageService{
		scope:  scope,
		audit:  sink,
		logger: logger,
	}
}

// Justify upserts the justification for a product's shortage on the OPEN day.
// Both stock phases must be complete and the computed shortage nonzero; an
// overage (negative shortage) is justified the same way.
func (s *ShortageService) Justify(ctx context.Context, actor identity.Principal, req JustifyShortageRequest) (*JustificationResponse, error) {
	var resp *JustificationResponse

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

		stock, err := repos.Stocks().Find(ctx, day.ID, product.ID)
		if err != nil {
			return err
		}
		if stock == nil || !stock.StockComplete() {
			return shared.NewDomainError("INCOMPLETE_STOCK", "Stock entries not completed for this product")
		}

		sold, err := repos.Sales().SumQuantityByDayAndProduct(ctx, day.ID, product.ID)
		if err != nil {
			return err
		}
		shortage := dayops.ComputeShortage(stock, sold)
		if shortage.IsZero() {
			return shared.NewDomainError("NO_SHORTAGE", "No shortage to justify for this product")
		}

		reason, err := dayops.NewStockShortageReason(day.ID, product.ID, shortage, req.Reason, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Shortages().Upsert(ctx, reason); err != nil {
			return err
		}

		resp = &JustificationResponse{
			ProductID:   product.ID,
			ShortageQty: shortage,
			Reason:      reason.Reason,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shortage justified",
		zap.String("product_id", req.ProductID.String()),
		zap.String("shortage_qty", resp.ShortageQty.String()),
		zap.String("entered_by", actor.Username))
	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionShortageJustify), "stock_shortage_reasons", req.ProductID.String(),
		map[string]any{"shortage_qty": resp.ShortageQty.String()}))

	return resp, nil
}

// Justifications lists the shortage justifications recorded for the OPEN day.
func (s *ShortageService) Justifications(ctx context.Context) ([]JustificationResponse, error) {
	var out []JustificationResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindOpen(ctx)
		if err != nil {
			return err
		}
		if day == nil {
			return shared.ErrNoOpenDay
		}
		reasons, err := repos.Shortages().FindByDay(ctx, day.ID)
		if err != nil {
			return err
		}
		out = make([]JustificationResponse, 0, len(reasons))
		for _, r := range reasons {
			out = append(out, JustificationResponse{
				ProductID:   r.ProductID,
				ShortageQty: r.ShortageQty,
				Reason:      r.Reason,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
