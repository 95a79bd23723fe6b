package catalog

import (
	"context"

	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingResolver answers "what does this customer pay for this product":
// the customer-specific override when one exists, otherwise the product's
// default price. Pure read, no side effects.
type PricingResolver struct {
	products catalog.ProductRepository
	prices   catalog.CustomerProductPriceRepository
}

// NewPricingResolver creates a new PricingResolver
func NewPricingResolver(products catalog.ProductRepository, prices catalog.CustomerProductPriceRepository) *PricingResolver {
	return &PricingResolver{
		products: products,
		prices:   prices,
	}
}

// Resolve returns the applicable unit price for a customer-product combination.
func (r *PricingResolver) Resolve(ctx context.Context, customerID, productID uuid.UUID) (decimal.Decimal, error) {
	return ResolveRate(ctx, r.products, r.prices, customerID, productID)
}

// ResolveRate is the resolver's core, usable against transaction-scoped
// repositories so billing resolves prices inside its own transaction.
func ResolveRate(
	ctx context.Context,
	products catalog.ProductRepository,
	prices catalog.CustomerProductPriceRepository,
	customerID, productID uuid.UUID,
) (decimal.Decimal, error) {
	product, err := products.FindActiveByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found or inactive")
	}

	override, err := prices.Find(ctx, customerID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if override != nil {
		return override.CustomPrice, nil
	}

	if product.DefaultPrice == nil {
		return decimal.Zero, shared.NewDomainError("PRICE_NOT_SET", "Product price not set")
	}
	return *product.DefaultPrice, nil
}
