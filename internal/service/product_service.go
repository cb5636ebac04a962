package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProductService covers the manufacturer catalog and the public listing of
// what distributors currently offer.
type ProductService interface {
	Create(ctx context.Context, manufacturerID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListAvailable(ctx context.Context, filter dto.ProductFilter) ([]dto.AvailableProductResponse, error)
	Search(ctx context.Context, q dto.ProductSearchQuery) ([]dto.ProductResponse, error)
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	inventory    repository.InventoryRepository
	cache        *catalogCache
}

// NewProductService wires the product workflows. rdb may be nil, which
// disables the listing cache.
func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	inventory repository.InventoryRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) ProductService {
	return &productService{
		repo:         repo,
		categoryRepo: categoryRepo,
		inventory:    inventory,
		cache:        newCatalogCache(rdb, cacheTTL),
	}
}

func (s *productService) Create(ctx context.Context, manufacturerID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		SKU:            strings.TrimSpace(req.SKU),
		ManufacturerID: manufacturerID,
		BasePrice:      req.BasePrice.Round(2),
		ImageURL:       req.ImageURL,
		IsActive:       true,
	}
	if req.CategoryID != nil {
		cid, err := parseID(*req.CategoryID, "categoryId")
		if err != nil {
			return nil, err
		}
		if _, err := s.categoryRepo.FindByID(ctx, cid); err != nil {
			return nil, lookupErr(err, "category")
		}
		p.CategoryID = &cid
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("sku %q already exists", p.SKU)
		}
		return nil, err
	}
	s.cache.invalidate(ctx)
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "product")
	}
	return productToResponse(p), nil
}

func (s *productService) ListAvailable(ctx context.Context, filter dto.ProductFilter) ([]dto.AvailableProductResponse, error) {
	var categoryID *uuid.UUID
	cacheKey := "all"
	if filter.CategoryID != "" {
		cid, err := parseID(filter.CategoryID, "categoryId")
		if err != nil {
			return nil, err
		}
		categoryID = &cid
		cacheKey = cid.String()
	}

	var cached []dto.AvailableProductResponse
	if s.cache.get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	rows, err := s.inventory.ListAvailable(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AvailableProductResponse, 0, len(rows))
	for i := range rows {
		inv := &rows[i]
		if inv.Product == nil {
			continue
		}
		out = append(out, dto.AvailableProductResponse{
			ProductResponse: *productToResponse(inv.Product),
			DistributorID:   inv.DistributorID.String(),
			SellingPrice:    inv.SellingPrice,
			Quantity:        inv.Quantity,
		})
	}

	s.cache.set(ctx, cacheKey, out)
	return out, nil
}

func (s *productService) Search(ctx context.Context, q dto.ProductSearchQuery) ([]dto.ProductResponse, error) {
	term := strings.TrimSpace(q.Q)
	if term == "" {
		return nil, apierror.Validation("q is required")
	}
	var categoryID *uuid.UUID
	if q.CategoryID != "" {
		cid, err := parseID(q.CategoryID, "categoryId")
		if err != nil {
			return nil, err
		}
		categoryID = &cid
	}
	products, err := s.repo.Search(ctx, term, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, len(products))
	for i := range products {
		out[i] = *productToResponse(&products[i])
	}
	return out, nil
}
