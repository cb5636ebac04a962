package service

import (
	"context"
	"time"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type InventoryService interface {
	List(ctx context.Context, distributorID uuid.UUID) ([]dto.InventoryResponse, error)
	Upsert(ctx context.Context, distributorID uuid.UUID, req dto.UpsertInventoryRequest) (*dto.InventoryResponse, error)
}

type inventoryService struct {
	repo        repository.InventoryRepository
	productRepo repository.ProductRepository
	cache       *catalogCache
}

func NewInventoryService(
	repo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) InventoryService {
	return &inventoryService{
		repo:        repo,
		productRepo: productRepo,
		cache:       newCatalogCache(rdb, cacheTTL),
	}
}

func (s *inventoryService) List(ctx context.Context, distributorID uuid.UUID) ([]dto.InventoryResponse, error) {
	rows, err := s.repo.ListByDistributor(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryResponse, len(rows))
	for i := range rows {
		out[i] = inventoryToResponse(&rows[i])
	}
	return out, nil
}

func (s *inventoryService) Upsert(ctx context.Context, distributorID uuid.UUID, req dto.UpsertInventoryRequest) (*dto.InventoryResponse, error) {
	productID, err := parseID(req.ProductID, "productId")
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, lookupErr(err, "product")
	}
	if !product.IsActive {
		return nil, apierror.Validation("product %s is inactive", product.Name)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	inv := &model.Inventory{
		DistributorID: distributorID,
		ProductID:     productID,
		Quantity:      req.Quantity,
		SellingPrice:  req.SellingPrice.Round(2),
		IsAvailable:   available,
		UpdatedAt:     time.Now(),
	}
	if err := s.repo.Upsert(ctx, inv); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx)

	inv.Product = product
	resp := inventoryToResponse(inv)
	return &resp, nil
}
