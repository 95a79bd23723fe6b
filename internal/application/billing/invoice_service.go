package billing

import (
	"context"

	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/shared"
)

// InvoiceService serves read-only invoice views. Finalized invoices never
// change, so these are plain reads with no transaction scope.
type InvoiceService struct {
	invoices billing.InvoiceRepository
	sales    billing.SaleRepository
	payments billing.PaymentRepository
	products catalog.ProductRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoices billing.InvoiceRepository,
	sales billing.SaleRepository,
	payments billing.PaymentRepository,
	products catalog.ProductRepository,
) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		sales:    sales,
		payments: payments,
		products: products,
	}
}

// Get returns one invoice with its sale lines and payment legs.
func (s *InvoiceService) Get(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	}

	sales, err := s.sales.FindByInvoice(ctx, invoice.Number)
	if err != nil {
		return nil, err
	}
	items := make([]BilledItem, 0, len(sales))
	for _, sale := range sales {
		name := ""
		if product, err := s.products.FindByID(ctx, sale.ProductID); err != nil {
			return nil, err
		} else if product != nil {
			name = product.Name
		}
		items = append(items, BilledItem{
			ProductID:   sale.ProductID,
			ProductName: name,
			Quantity:    sale.Quantity,
			Rate:        sale.Rate,
			Amount:      sale.Amount,
		})
	}

	paymentRows, err := s.payments.FindByInvoice(ctx, invoice.Number)
	if err != nil {
		return nil, err
	}
	paymentLegs := make([]PaymentResponse, 0, len(paymentRows))
	for _, p := range paymentRows {
		paymentLegs = append(paymentLegs, PaymentResponse{Mode: p.Mode.String(), Amount: p.Amount})
	}

	return &InvoiceResponse{
		InvoiceNumber: invoice.Number,
		CustomerID:    invoice.CustomerID,
		BusinessDate:  invoice.BusinessDate.Format("2006-01-02"),
		Items:         items,
		Payments:      paymentLegs,
		Subtotal:      invoice.Subtotal,
		TotalPaid:     invoice.TotalPaid,
		Due:           invoice.Due,
		CreatedAt:     invoice.CreatedAt,
	}, nil
}

// List returns the newest invoices first.
func (s *InvoiceService) List(ctx context.Context, limit int) ([]InvoiceSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	invoices, err := s.invoices.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, InvoiceSummary{
			InvoiceNumber: inv.Number,
			CustomerID:    inv.CustomerID,
			BusinessDate:  inv.BusinessDate.Format("2006-01-02"),
			Subtotal:      inv.Subtotal,
			TotalPaid:     inv.TotalPaid,
			Due:           inv.Due,
			CreatedAt:     inv.CreatedAt,
		})
	}
	return out, nil
}
