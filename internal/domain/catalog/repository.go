package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveByID finds a product that is still active
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds a product by name (case-insensitive)
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAllActive lists active products ordered by name
	FindAllActive(ctx context.Context) ([]Product, error)

	// FindAll lists all products including inactive ones
	FindAll(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a customer by phone number
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// FindAllActive lists active customers ordered by name
	FindAllActive(ctx context.Context) ([]Customer, error)

	// FindAllIDs lists the IDs of every customer, active or not
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}

// CustomerProductPriceRepository defines the interface for price overrides
type CustomerProductPriceRepository interface {
	// Find finds the override for a customer-product combination
	Find(ctx context.Context, customerID, productID uuid.UUID) (*CustomerProductPrice, error)

	// FindByCustomer lists all overrides for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]CustomerProductPrice, error)

	// Upsert inserts or replaces an override
	Upsert(ctx context.Context, price *CustomerProductPrice) error
}
