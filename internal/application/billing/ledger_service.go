package billing

import (
	"context"

	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LedgerService serves the replayed customer ledger. The event stream is the
// authoritative source of dues; balances here are always recomputed from it.
type LedgerService struct {
	ledgerEvents billing.LedgerEventRepository
	customers    catalog.CustomerRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerEvents billing.LedgerEventRepository, customers catalog.CustomerRepository) *LedgerService {
	return &LedgerService{
		ledgerEvents: ledgerEvents,
		customers:    customers,
	}
}

// CustomerLedger replays a customer's full event history into statement lines
// with a running balance.
func (s *LedgerService) CustomerLedger(ctx context.Context, customerID uuid.UUID) (*LedgerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	events, err := s.ledgerEvents.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	lines := billing.Replay(events)
	return &LedgerResponse{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Lines:        lines,
		Balance:      billing.ReplayBalance(events),
	}, nil
}

// CustomerBalance returns a customer's current balance from the event stream.
func (s *LedgerService) CustomerBalance(ctx context.Context, customerID uuid.UUID) (*LedgerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}
	balance, err := s.ledgerEvents.BalanceByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &LedgerResponse{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Balance:      balance,
	}, nil
}
