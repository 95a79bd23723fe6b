package report

import (
	"context"

	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/dayops"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DayEndReport summarizes one business day's money flow
type DayEndReport struct {
	BusinessDate    string          `json:"business_date"`
	Status          string          `json:"status"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	CashCollected   decimal.Decimal `json:"cash_collected"`
	OnlineCollected decimal.Decimal `json:"online_collected"`
	TotalCollected  decimal.Decimal `json:"total_collected"`
	NetDueChange    decimal.Decimal `json:"net_due_change"`
	InvoiceCount    int64           `json:"invoice_count"`
}

// CustomerSummary aggregates customer activity and outstanding dues
type CustomerSummary struct {
	BilledToday      int64           `json:"billed_today"`
	CustomersWithDue int64           `json:"customers_with_due"`
	TotalDue         decimal.Decimal `json:"total_due"`
}

// ReportService builds read-only summaries. Dues always come from the ledger
// event stream, never from balance snapshots.
type ReportService struct {
	days         dayops.BusinessDayRepository
	invoices     billing.InvoiceRepository
	sales        billing.SaleRepository
	payments     billing.PaymentRepository
	ledgerEvents billing.LedgerEventRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	days dayops.BusinessDayRepository,
	invoices billing.InvoiceRepository,
	sales billing.SaleRepository,
	payments billing.PaymentRepository,
	ledgerEvents billing.LedgerEventRepository,
) *ReportService {
	return &ReportService{
		days:         days,
		invoices:     invoices,
		sales:        sales,
		payments:     payments,
		ledgerEvents: ledgerEvents,
	}
}

// DayEnd summarizes the most recent business day
func (s *ReportService) DayEnd(ctx context.Context) (*DayEndReport, error) {
	day, err := s.days.FindLatest(ctx)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, shared.NewDomainError("NO_DAY", "No business day exists")
	}

	totalSales, err := s.sales.SumAmountByDay(ctx, day.ID)
	if err != nil {
		return nil, err
	}
	byMode, err := s.payments.SumByDayAndMode(ctx, day.ID)
	if err != nil {
		return nil, err
	}
	invoiceCount, err := s.invoices.CountByDay(ctx, day.ID)
	if err != nil {
		return nil, err
	}

	cash := byMode[billing.PaymentModeCash]
	online := byMode[billing.PaymentModeOnline]
	collected := cash.Add(online)

	return &DayEndReport{
		BusinessDate:    day.BusinessDate.Format("2006-01-02"),
		Status:          day.Status.String(),
		TotalSales:      totalSales,
		CashCollected:   cash,
		OnlineCollected: online,
		TotalCollected:  collected,
		NetDueChange:    totalSales.Sub(collected),
		InvoiceCount:    invoiceCount,
	}, nil
}

// Customers summarizes billing coverage and outstanding dues as of now
func (s *ReportService) Customers(ctx context.Context) (*CustomerSummary, error) {
	day, err := s.days.FindLatest(ctx)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, shared.NewDomainError("NO_DAY", "No business day exists")
	}

	billedToday, err := s.sales.CountDistinctCustomersByDate(ctx, day.BusinessDate)
	if err != nil {
		return nil, err
	}

	balances, err := s.ledgerEvents.BalancesByCustomer(ctx)
	if err != nil {
		return nil, err
	}

	summary := &CustomerSummary{
		BilledToday: billedToday,
		TotalDue:    decimal.Zero,
	}
	for _, balance := range balances {
		if balance.GreaterThan(decimal.Zero) {
			summary.CustomersWithDue++
			summary.TotalDue = summary.TotalDue.Add(balance)
		}
	}
	return summary, nil
}
