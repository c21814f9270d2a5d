package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Supplier, error) {
	supplier, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return Supplier{}, fmt.Errorf("%w: supplier not found", httpx.ErrNotFound)
		}
		return Supplier{}, fmt.Errorf("get supplier: %w", err)
	}
	return supplier, nil
}

func (s *Service) Create(ctx context.Context, form SupplierForm) (Supplier, error) {
	if err := validateForm(form); err != nil {
		return Supplier{}, err
	}
	supplier := Supplier{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(form.Name),
		ContactEmail: strings.ToLower(strings.TrimSpace(form.ContactEmail)),
		Phone:        form.Phone,
		Address:      form.Address,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, form SupplierForm) (Supplier, error) {
	if err := validateForm(form); err != nil {
		return Supplier{}, err
	}
	supplier := Supplier{
		ID:           id,
		Name:         strings.TrimSpace(form.Name),
		ContactEmail: strings.ToLower(strings.TrimSpace(form.ContactEmail)),
		Phone:        form.Phone,
		Address:      form.Address,
	}
	affected, err := s.repo.Update(ctx, id, supplier)
	if err != nil {
		return Supplier{}, fmt.Errorf("update supplier: %w", err)
	}
	if affected == 0 {
		return Supplier{}, fmt.Errorf("%w: supplier not found", httpx.ErrNotFound)
	}
	return supplier, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: supplier not found", httpx.ErrNotFound)
	}
	return nil
}

func validateForm(form SupplierForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", httpx.ErrValidation)
	}
	if !strings.Contains(form.ContactEmail, "@") {
		return fmt.Errorf("%w: contact email is invalid", httpx.ErrValidation)
	}
	return nil
}
