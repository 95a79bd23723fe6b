package catalog

import (
	"context"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product catalog management
type ProductService struct {
	products catalog.ProductRepository
	audit    audit.Sink
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, sink audit.Sink) *ProductService {
	return &ProductService{
		products: products,
		audit:    sink,
	}
}

// Create creates a new product with a unique name
func (s *ProductService) Create(ctx context.Context, actor identity.Principal, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.products.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this name already exists")
	}

	product, err := catalog.NewProduct(req.Name, req.Unit, req.DefaultPrice)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionCatalogManage), "products", product.ID.String(),
		map[string]any{"name": product.Name}))

	return toProductResponse(product), nil
}

// UpdateDefaultPrice changes a product's default price
func (s *ProductService) UpdateDefaultPrice(ctx context.Context, actor identity.Principal, productID uuid.UUID, req UpdateProductPriceRequest) (*ProductResponse, error) {
	product, err := s.products.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found or inactive")
	}

	if err := product.UpdateDefaultPrice(req.DefaultPrice); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionPricingSet), "products", product.ID.String(),
		map[string]any{"default_price": req.DefaultPrice.String()}))

	return toProductResponse(product), nil
}

// Deactivate removes a product from sale without deleting its history
func (s *ProductService) Deactivate(ctx context.Context, actor identity.Principal, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	}

	product.Deactivate()
	if err := s.products.Save(ctx, product); err != nil {
		return err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionCatalogManage), "products", product.ID.String(),
		map[string]any{"deactivated": true}))
	return nil
}

// List returns products, active only unless includeInactive is set
func (s *ProductService) List(ctx context.Context, includeInactive bool) ([]ProductResponse, error) {
	var (
		products []catalog.Product
		err      error
	)
	if includeInactive {
		products, err = s.products.FindAll(ctx)
	} else {
		products, err = s.products.FindAllActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *toProductResponse(&products[i]))
	}
	return out, nil
}
