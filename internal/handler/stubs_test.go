package handler_test

import (
	"context"

	"auromart/internal/dto"
	"auromart/internal/infra"
	"auromart/internal/model"

	"github.com/google/uuid"
)

// Each stub records the arguments of its last call and returns canned values.

type stubAuth struct {
	loginResp *dto.LoginResponse
	err       error
	gotUserID uuid.UUID
}

func (s *stubAuth) Register(_ context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserResponse{ID: uuid.NewString(), Email: req.Email, Role: req.Role}, nil
}

func (s *stubAuth) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuth) Refresh(_ context.Context, _ string) (*dto.LoginResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuth) CurrentUser(_ context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	s.gotUserID = id
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserResponse{ID: id.String()}, nil
}

func (s *stubAuth) UpdateProfile(_ context.Context, id uuid.UUID, _ dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	s.gotUserID = id
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserResponse{ID: id.String()}, nil
}

type stubOrders struct {
	err      error
	gotUser  uuid.UUID
	gotRole  model.Role
	gotOrder uuid.UUID
	gotReq   any
}

func (s *stubOrders) Create(_ context.Context, retailerID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	s.gotUser, s.gotReq = retailerID, req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.OrderResponse{ID: uuid.NewString(), OrderNumber: "ORD-2026-000001", Status: "pending"}, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, distributorID, orderID uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	s.gotUser, s.gotOrder, s.gotReq = distributorID, orderID, req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.OrderResponse{ID: orderID.String(), Status: req.Status}, nil
}

func (s *stubOrders) UpdateDeliveryMode(_ context.Context, distributorID, orderID uuid.UUID, req dto.UpdateDeliveryModeRequest) (*dto.OrderResponse, error) {
	s.gotUser, s.gotOrder, s.gotReq = distributorID, orderID, req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.OrderResponse{ID: orderID.String(), DeliveryMode: req.DeliveryMode}, nil
}

func (s *stubOrders) List(_ context.Context, userID uuid.UUID, role model.Role) ([]dto.OrderResponse, error) {
	s.gotUser, s.gotRole = userID, role
	return []dto.OrderResponse{}, s.err
}

func (s *stubOrders) Get(_ context.Context, userID uuid.UUID, role model.Role, orderID uuid.UUID) (*dto.OrderResponse, error) {
	s.gotUser, s.gotRole, s.gotOrder = userID, role, orderID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.OrderResponse{ID: orderID.String()}, nil
}

func (s *stubOrders) History(_ context.Context, userID uuid.UUID, role model.Role, partnerID uuid.UUID) ([]dto.OrderResponse, error) {
	s.gotUser, s.gotRole, s.gotOrder = userID, role, partnerID
	return []dto.OrderResponse{}, s.err
}

type stubInvoices struct {
	err error
	pdf *infra.StoredPDF
}

func (s *stubInvoices) Create(_ context.Context, _, orderID uuid.UUID) (*dto.InvoiceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.InvoiceResponse{ID: uuid.NewString(), OrderID: orderID.String(), InvoiceNumber: "INV-2026-000001"}, nil
}

func (s *stubInvoices) GetForOrder(_ context.Context, _ uuid.UUID, _ model.Role, orderID uuid.UUID) (*dto.InvoiceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.InvoiceResponse{OrderID: orderID.String()}, nil
}

func (s *stubInvoices) Download(_ context.Context, _ uuid.UUID, _ model.Role, _ uuid.UUID) (*infra.StoredPDF, error) {
	return s.pdf, s.err
}

type stubPartnerships struct {
	err       error
	gotUser   uuid.UUID
	gotRole   model.Role
	gotID     uuid.UUID
	gotSearch string
}

func (s *stubPartnerships) AvailablePartners(_ context.Context, userID uuid.UUID, role model.Role) ([]dto.PublicUserResponse, error) {
	s.gotUser, s.gotRole = userID, role
	return []dto.PublicUserResponse{{ID: uuid.NewString()}}, s.err
}

func (s *stubPartnerships) SendRequest(_ context.Context, requesterID uuid.UUID, req dto.PartnershipRequest) (*dto.PartnershipResponse, error) {
	s.gotUser = requesterID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PartnershipResponse{ID: uuid.NewString(), PartnerID: req.PartnerID, Status: "pending"}, nil
}

func (s *stubPartnerships) Respond(_ context.Context, userID, partnershipID uuid.UUID, req dto.RespondPartnershipRequest) (*dto.PartnershipResponse, error) {
	s.gotUser, s.gotID = userID, partnershipID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PartnershipResponse{ID: partnershipID.String(), Status: req.Status}, nil
}

func (s *stubPartnerships) List(_ context.Context, userID uuid.UUID) ([]dto.PartnershipResponse, error) {
	s.gotUser = userID
	return []dto.PartnershipResponse{}, s.err
}

func (s *stubPartnerships) ListReceived(_ context.Context, userID uuid.UUID) ([]dto.PartnershipResponse, error) {
	s.gotUser = userID
	return []dto.PartnershipResponse{}, s.err
}

func (s *stubPartnerships) ListDirectory(_ context.Context, role model.Role, search string) ([]dto.PublicUserResponse, error) {
	s.gotRole, s.gotSearch = role, search
	return []dto.PublicUserResponse{{ID: uuid.NewString(), Role: string(role)}}, s.err
}

func (s *stubPartnerships) SearchPartners(_ context.Context, userID uuid.UUID, role model.Role, search string) ([]dto.PublicUserResponse, error) {
	s.gotUser, s.gotRole, s.gotSearch = userID, role, search
	return []dto.PublicUserResponse{}, s.err
}

type stubFavorites struct {
	err      error
	removed  uuid.UUID
	favorite bool
}

func (s *stubFavorites) List(_ context.Context, _ uuid.UUID) ([]dto.FavoriteResponse, error) {
	return []dto.FavoriteResponse{}, s.err
}

func (s *stubFavorites) Add(_ context.Context, _ uuid.UUID, req dto.AddFavoriteRequest) (*dto.FavoriteResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.FavoriteResponse{ID: uuid.NewString(), FavoriteUserID: req.FavoriteUserID, FavoriteType: req.FavoriteType}, nil
}

func (s *stubFavorites) Remove(_ context.Context, _, favoriteUserID uuid.UUID) error {
	s.removed = favoriteUserID
	return s.err
}

func (s *stubFavorites) Check(_ context.Context, _, _ uuid.UUID) (*dto.FavoriteCheckResponse, error) {
	return &dto.FavoriteCheckResponse{IsFavorite: s.favorite}, s.err
}

type stubNotifications struct {
	err error
}

func (s *stubNotifications) ListUndelivered(_ context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	return []dto.NotificationResponse{{ID: uuid.NewString(), UserID: userID.String()}}, s.err
}

func (s *stubNotifications) History(_ context.Context, _ uuid.UUID) ([]dto.NotificationResponse, error) {
	return []dto.NotificationResponse{}, s.err
}

func (s *stubNotifications) MarkDelivered(_ context.Context, _, id uuid.UUID) (*dto.NotificationResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.NotificationResponse{ID: id.String(), IsDelivered: true}, nil
}

type stubAnalytics struct {
	gotRole model.Role
}

func (s *stubAnalytics) Stats(_ context.Context, _ uuid.UUID, role model.Role) (*dto.StatsResponse, error) {
	s.gotRole = role
	return &dto.StatsResponse{TotalOrders: 3, PendingOrders: 1}, nil
}

type stubSearch struct {
	gotLimit int
}

func (s *stubSearch) Record(_ context.Context, _ uuid.UUID, req dto.RecordSearchRequest) (*dto.SearchHistoryResponse, error) {
	return &dto.SearchHistoryResponse{ID: uuid.NewString(), SearchTerm: req.SearchTerm}, nil
}

func (s *stubSearch) History(_ context.Context, _ uuid.UUID, limit int) ([]dto.SearchHistoryResponse, error) {
	s.gotLimit = limit
	return []dto.SearchHistoryResponse{}, nil
}

type stubCategories struct{ err error }

func (s *stubCategories) List(_ context.Context) ([]dto.CategoryResponse, error) {
	return []dto.CategoryResponse{{ID: uuid.NewString(), Name: "Beverages"}}, s.err
}

func (s *stubCategories) Create(_ context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CategoryResponse{ID: uuid.NewString(), Name: req.Name}, nil
}

type stubProducts struct {
	err       error
	gotFilter dto.ProductFilter
	gotQuery  dto.ProductSearchQuery
	gotOwner  uuid.UUID
}

func (s *stubProducts) Create(_ context.Context, manufacturerID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	s.gotOwner = manufacturerID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ProductResponse{ID: uuid.NewString(), Name: req.Name, SKU: req.SKU, BasePrice: req.BasePrice}, nil
}

func (s *stubProducts) GetByID(_ context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ProductResponse{ID: id.String()}, nil
}

func (s *stubProducts) ListAvailable(_ context.Context, filter dto.ProductFilter) ([]dto.AvailableProductResponse, error) {
	s.gotFilter = filter
	return []dto.AvailableProductResponse{}, s.err
}

func (s *stubProducts) Search(_ context.Context, q dto.ProductSearchQuery) ([]dto.ProductResponse, error) {
	s.gotQuery = q
	return []dto.ProductResponse{}, s.err
}

type stubInventory struct {
	gotOwner uuid.UUID
}

func (s *stubInventory) List(_ context.Context, distributorID uuid.UUID) ([]dto.InventoryResponse, error) {
	s.gotOwner = distributorID
	return []dto.InventoryResponse{}, nil
}

func (s *stubInventory) Upsert(_ context.Context, distributorID uuid.UUID, req dto.UpsertInventoryRequest) (*dto.InventoryResponse, error) {
	s.gotOwner = distributorID
	return &dto.InventoryResponse{ProductID: req.ProductID}, nil
}
