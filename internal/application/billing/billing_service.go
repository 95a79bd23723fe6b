package billing

import (
	"context"
	"fmt"
	"time"

	catalogapp "github.com/dairyops/backend/internal/application/catalog"
	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingService handles counter billing: building invoices from sale lines
// and payment legs, and clearing outstanding dues.
type BillingService struct {
	scope  TransactionScope
	audit  audit.Sink
	logger *zap.Logger
}

// NewBillingService creates a new BillingService
func NewBillingService(scope TransactionScope, sink audit.Sink, logger *zap.Logger) *BillingService {
	return &BillingService{
		scope:  scope,
		audit:  sink,
		logger: logger,
	}
}

// QuickBilling runs one complete billing transaction against the OPEN day:
// allocate the next invoice number, insert a sale line plus SALE ledger event
// per item, insert a payment leg plus PAYMENT ledger event per nonzero
// payment mode, then finalize the invoice. Each item's stock row is locked
// for update so concurrent sales of the same product serialize; any failure
// rolls back the whole invoice.
func (s *BillingService) QuickBilling(ctx context.Context, actor identity.Principal, req QuickBillingRequest) (*QuickBillingResponse, error) {
	if req.CashAmount.IsNegative() || req.OnlineAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amounts cannot be negative")
	}
	totalPayment := req.CashAmount.Add(req.OnlineAmount)
	if len(req.Items) == 0 && totalPayment.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("EMPTY_BILL", "At least one item or payment is required")
	}

	var resp *QuickBillingResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindOpen(ctx)
		if err != nil {
			return err
		}
		if day == nil {
			return shared.ErrNoOpenDay
		}

		customer, err := repos.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil || !customer.IsActive {
			return shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found or inactive")
		}

		count, err := repos.Invoices().CountByDay(ctx, day.ID)
		if err != nil {
			return err
		}
		number := billing.FormatInvoiceNumber(day.BusinessDate, count+1)

		invoice, err := billing.NewInvoice(number, day.ID, customer.ID, day.BusinessDate, &actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.Invoices().Create(ctx, invoice); err != nil {
			return err
		}

		subtotal := decimal.Zero
		items := make([]BilledItem, 0, len(req.Items))
		for _, item := range req.Items {
			product, err := repos.Products().FindActiveByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found or inactive")
			}
			if item.Quantity.LessThanOrEqual(decimal.Zero) {
				return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
			}

			// Lock the stock row so concurrent bills for the same product
			// serialize on the availability check.
			stock, err := repos.Stocks().FindForUpdate(ctx, day.ID, product.ID)
			if err != nil {
				return err
			}
			if stock == nil || !stock.MorningComplete() {
				return shared.NewDomainError("MORNING_NOT_COMPLETED", "Morning stock not completed for this product")
			}

			soldSoFar, err := repos.Sales().SumQuantityByDayAndProduct(ctx, day.ID, product.ID)
			if err != nil {
				return err
			}
			available := stock.PlantLoadQty.Sub(soldSoFar)
			if item.Quantity.GreaterThan(available) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %s. Available: %s", product.Name, available.String()))
			}

			rate, err := catalogapp.ResolveRate(ctx, repos.Products(), repos.CustomerPrices(), customer.ID, product.ID)
			if err != nil {
				return err
			}

			sale, err := billing.NewSale(day.ID, customer.ID, product.ID, day.BusinessDate, item.Quantity, rate, number)
			if err != nil {
				return err
			}
			if err := repos.Sales().Create(ctx, sale); err != nil {
				return err
			}
			if err := repos.LedgerEvents().Append(ctx, billing.NewSaleEvent(sale)); err != nil {
				return err
			}

			subtotal = subtotal.Add(sale.Amount)
			items = append(items, BilledItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    sale.Quantity,
				Rate:        sale.Rate,
				Amount:      sale.Amount,
			})
		}

		if err := s.recordPayment(ctx, repos, day.ID, day.BusinessDate, customer.ID, billing.PaymentModeCash, req.CashAmount, &number); err != nil {
			return err
		}
		if err := s.recordPayment(ctx, repos, day.ID, day.BusinessDate, customer.ID, billing.PaymentModeOnline, req.OnlineAmount, &number); err != nil {
			return err
		}

		if err := invoice.Finalize(subtotal, req.CashAmount, req.OnlineAmount); err != nil {
			return err
		}
		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return err
		}

		balance, err := repos.LedgerEvents().BalanceByCustomer(ctx, customer.ID)
		if err != nil {
			return err
		}

		resp = &QuickBillingResponse{
			InvoiceNumber:   invoice.Number,
			CustomerID:      customer.ID,
			Items:           items,
			Subtotal:        invoice.Subtotal,
			CashPaid:        invoice.CashPaid,
			OnlinePaid:      invoice.OnlinePaid,
			TotalPaid:       invoice.TotalPaid,
			Due:             invoice.Due,
			CustomerBalance: balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice finalized",
		zap.String("invoice_number", resp.InvoiceNumber),
		zap.String("customer_id", resp.CustomerID.String()),
		zap.String("subtotal", resp.Subtotal.String()),
		zap.String("billed_by", actor.Username))
	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionBillingCreate), "invoices", resp.InvoiceNumber,
		map[string]any{"subtotal": resp.Subtotal.String(), "due": resp.Due.String()}))

	return resp, nil
}

// ClearDue records a standalone payment against a customer's outstanding
// balance. It does not require an OPEN day; the payment attaches to the most
// recent day.
func (s *BillingService) ClearDue(ctx context.Context, actor identity.Principal, req ClearDueRequest) (*ClearDueResponse, error) {
	mode := billing.PaymentMode(req.Mode)
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Invalid payment mode")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	var resp *ClearDueResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		day, err := repos.Days().FindLatest(ctx)
		if err != nil {
			return err
		}
		if day == nil {
			return shared.NewDomainError("NO_DAY", "No business day exists")
		}

		customer, err := repos.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil || !customer.IsActive {
			return shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found or inactive")
		}

		payment, err := billing.NewPayment(day.ID, customer.ID, mode, req.Amount, nil)
		if err != nil {
			return err
		}
		if err := repos.Payments().Create(ctx, payment); err != nil {
			return err
		}
		if err := repos.LedgerEvents().Append(ctx, billing.NewPaymentEvent(payment, day.BusinessDate, "Due clearance")); err != nil {
			return err
		}

		balance, err := repos.LedgerEvents().BalanceByCustomer(ctx, customer.ID)
		if err != nil {
			return err
		}

		resp = &ClearDueResponse{
			CustomerID:      customer.ID,
			Mode:            mode.String(),
			Amount:          payment.Amount,
			CustomerBalance: balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("due cleared",
		zap.String("customer_id", resp.CustomerID.String()),
		zap.String("amount", resp.Amount.String()),
		zap.String("recorded_by", actor.Username))
	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionDueClear), "payments", resp.CustomerID.String(),
		map[string]any{"amount": resp.Amount.String(), "mode": resp.Mode}))

	return resp, nil
}

// recordPayment inserts one payment leg plus its ledger event; a zero amount
// records nothing.
func (s *BillingService) recordPayment(
	ctx context.Context,
	repos TransactionalRepositories,
	dayID uuid.UUID,
	businessDate time.Time,
	customerID uuid.UUID,
	mode billing.PaymentMode,
	amount decimal.Decimal,
	invoiceNumber *string,
) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	payment, err := billing.NewPayment(dayID, customerID, mode, amount, invoiceNumber)
	if err != nil {
		return err
	}
	if err := repos.Payments().Create(ctx, payment); err != nil {
		return err
	}
	return repos.LedgerEvents().Append(ctx, billing.NewPaymentEvent(payment, businessDate, ""))
}
