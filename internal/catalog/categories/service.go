package categories

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

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Category, error) {
	category, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return Category{}, fmt.Errorf("%w: category not found", httpx.ErrNotFound)
		}
		return Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s *Service) Create(ctx context.Context, form CategoryForm) (Category, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is required", httpx.ErrValidation)
	}
	category := Category{
		ID:          uuid.New(),
		Name:        name,
		Description: form.Description,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, form CategoryForm) (Category, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category name is required", httpx.ErrValidation)
	}
	category := Category{ID: id, Name: name, Description: form.Description}
	affected, err := s.repo.Update(ctx, id, category)
	if err != nil {
		return Category{}, fmt.Errorf("update category: %w", err)
	}
	if affected == 0 {
		return Category{}, fmt.Errorf("%w: category not found", httpx.ErrNotFound)
	}
	return category, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category not found", httpx.ErrNotFound)
	}
	return nil
}
