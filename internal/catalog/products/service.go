package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/stockroom/internal/catalog/categories"
	"github.com/stockroom/stockroom/internal/catalog/suppliers"
	"github.com/stockroom/stockroom/internal/platform/httpx"
)

type Service struct {
	repo         Repository
	categoryRepo categories.Repository
	supplierRepo suppliers.Repository
}

func NewService(repo Repository, categoryRepo categories.Repository, supplierRepo suppliers.Repository) *Service {
	return &Service{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

func (s *Service) List(ctx context.Context) ([]ProductDetail, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (ProductDetail, error) {
	detail, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return ProductDetail{}, fmt.Errorf("%w: product not found", httpx.ErrNotFound)
		}
		return ProductDetail{}, fmt.Errorf("get product: %w", err)
	}
	return detail, nil
}

func (s *Service) Create(ctx context.Context, form ProductForm) (ProductDetail, error) {
	product, err := s.buildProduct(ctx, uuid.New(), form)
	if err != nil {
		return ProductDetail{}, err
	}
	product.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, product); err != nil {
		return ProductDetail{}, fmt.Errorf("create product: %w", err)
	}
	return s.repo.Get(ctx, product.ID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, form ProductForm) (ProductDetail, error) {
	product, err := s.buildProduct(ctx, id, form)
	if err != nil {
		return ProductDetail{}, err
	}

	affected, err := s.repo.Update(ctx, id, product)
	if err != nil {
		return ProductDetail{}, fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return ProductDetail{}, fmt.Errorf("%w: product not found", httpx.ErrNotFound)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product not found", httpx.ErrNotFound)
	}
	return nil
}

// buildProduct runs the admin-write validations shared by create and update:
// required name, non-negative quantity/price, unique upper-normalised SKU,
// existing category and (when given) supplier.
func (s *Service) buildProduct(ctx context.Context, id uuid.UUID, form ProductForm) (Product, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return Product{}, fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	if form.Quantity < 0 || form.UnitPrice.IsNegative() {
		return Product{}, fmt.Errorf("%w: quantity and price cannot be negative", httpx.ErrValidation)
	}

	sku := strings.ToUpper(strings.TrimSpace(form.Sku))
	if sku == "" {
		return Product{}, fmt.Errorf("%w: product sku is required", httpx.ErrValidation)
	}
	exists, err := s.repo.SkuExists(ctx, sku, id)
	if err != nil {
		return Product{}, fmt.Errorf("check sku: %w", err)
	}
	if exists {
		return Product{}, fmt.Errorf("%w: sku already exists", httpx.ErrDuplicate)
	}

	if _, err := s.categoryRepo.Get(ctx, form.CategoryID); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return Product{}, fmt.Errorf("%w: category not found", httpx.ErrValidation)
		}
		return Product{}, fmt.Errorf("verify category: %w", err)
	}
	if form.SupplierID != nil {
		if _, err := s.supplierRepo.Get(ctx, *form.SupplierID); err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				return Product{}, fmt.Errorf("%w: supplier not found", httpx.ErrValidation)
			}
			return Product{}, fmt.Errorf("verify supplier: %w", err)
		}
	}

	return Product{
		ID:           id,
		Name:         name,
		Sku:          sku,
		CategoryID:   form.CategoryID,
		SupplierID:   form.SupplierID,
		Quantity:     form.Quantity,
		ReorderLevel: form.ReorderLevel,
		UnitPrice:    form.UnitPrice,
	}, nil
}
