package service

import (
	"context"
	"errors"
	"strings"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, len(list))
	for i := range list {
		out[i] = categoryToResponse(&list[i])
	}
	return out, nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierror.Validation("name is required")
	}
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, apierror.Conflict("category %q already exists", name)
	}

	c := &model.Category{Name: name, Description: req.Description}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("category %q already exists", name)
		}
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}
