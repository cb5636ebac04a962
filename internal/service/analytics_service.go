package service

import (
	"context"
	"time"

	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
)

type AnalyticsService interface {
	Stats(ctx context.Context, userID uuid.UUID, role model.Role) (*dto.StatsResponse, error)
}

type analyticsService struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
	now      func() time.Time
}

func NewAnalyticsService(orders repository.OrderRepository, users repository.UserRepository, products repository.ProductRepository) AnalyticsService {
	return &analyticsService{orders: orders, users: users, products: products, now: time.Now}
}

// Stats filters on retailer_id for retailers and on distributor_id for every
// other role. Nothing is cached.
func (s *analyticsService) Stats(ctx context.Context, userID uuid.UUID, role model.Role) (*dto.StatsResponse, error) {
	st, err := s.orders.Stats(ctx, userID, role == model.RoleRetailer, monthStart(s.now()))
	if err != nil {
		return nil, err
	}
	resp := &dto.StatsResponse{
		TotalOrders:     st.Total,
		PendingOrders:   st.Pending,
		CompletedOrders: st.Completed,
		MonthlySpend:    st.MonthlySpend,
	}

	switch role {
	case model.RoleRetailer:
		n, err := s.users.CountActiveByRole(ctx, model.RoleDistributor)
		if err != nil {
			return nil, err
		}
		resp.ActiveDistributors = &n
	case model.RoleManufacturer:
		n, err := s.products.CountByManufacturer(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp.TotalProducts = &n
	}
	return resp, nil
}
