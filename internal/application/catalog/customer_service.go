package catalog

import (
	"context"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/dayops"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer management and per-customer price overrides
type CustomerService struct {
	customers catalog.CustomerRepository
	prices    catalog.CustomerProductPriceRepository
	products  catalog.ProductRepository
	days      dayops.BusinessDayRepository
	audit     audit.Sink
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customers catalog.CustomerRepository,
	prices catalog.CustomerProductPriceRepository,
	products catalog.ProductRepository,
	days dayops.BusinessDayRepository,
	sink audit.Sink,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		prices:    prices,
		products:  products,
		days:      days,
		audit:     sink,
	}
}

// Create creates a new customer with a unique phone number
func (s *CustomerService) Create(ctx context.Context, actor identity.Principal, req CreateCustomerRequest) (*CustomerResponse, error) {
	existing, err := s.customers.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
	}

	customer, err := catalog.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionCatalogManage), "customers", customer.ID.String(),
		map[string]any{"name": customer.Name}))

	return toCustomerResponse(customer), nil
}

// List returns active customers ordered by name
func (s *CustomerService) List(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customers.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *toCustomerResponse(&customers[i]))
	}
	return out, nil
}

// Deactivate removes a customer from billing without deleting history
func (s *CustomerService) Deactivate(ctx context.Context, actor identity.Principal, customerID uuid.UUID) error {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	customer.Deactivate()
	if err := s.customers.Save(ctx, customer); err != nil {
		return err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionCatalogManage), "customers", customer.ID.String(),
		map[string]any{"deactivated": true}))
	return nil
}

// SetPrice upserts a customer's price override for a product. Price changes
// are only allowed while a day is OPEN so a bill never spans two price
// regimes within the same day unnoticed.
func (s *CustomerService) SetPrice(ctx context.Context, actor identity.Principal, customerID uuid.UUID, req SetCustomerPriceRequest) (*CustomerPriceResponse, error) {
	open, err := s.days.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, shared.ErrNoOpenDay
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || !customer.IsActive {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found or inactive")
	}

	product, err := s.products.FindActiveByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found or inactive")
	}

	price, err := catalog.NewCustomerProductPrice(customer.ID, product.ID, req.CustomPrice)
	if err != nil {
		return nil, err
	}
	if err := s.prices.Upsert(ctx, price); err != nil {
		return nil, err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionPricingSet), "customer_product_prices", customer.ID.String(),
		map[string]any{"product_id": product.ID.String(), "custom_price": req.CustomPrice.String()}))

	return &CustomerPriceResponse{
		CustomerID:  customer.ID,
		ProductID:   product.ID,
		CustomPrice: price.CustomPrice,
	}, nil
}

// Prices lists a customer's price overrides
func (s *CustomerService) Prices(ctx context.Context, customerID uuid.UUID) ([]CustomerPriceResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	prices, err := s.prices.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerPriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, CustomerPriceResponse{
			CustomerID:  p.CustomerID,
			ProductID:   p.ProductID,
			CustomPrice: p.CustomPrice,
		})
	}
	return out, nil
}
