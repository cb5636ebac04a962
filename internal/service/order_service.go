package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(ctx context.Context, retailerID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, distributorID, orderID uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	UpdateDeliveryMode(ctx context.Context, distributorID, orderID uuid.UUID, req dto.UpdateDeliveryModeRequest) (*dto.OrderResponse, error)
	List(ctx context.Context, userID uuid.UUID, role model.Role) ([]dto.OrderResponse, error)
	Get(ctx context.Context, userID uuid.UUID, role model.Role, orderID uuid.UUID) (*dto.OrderResponse, error)
	History(ctx context.Context, userID uuid.UUID, role model.Role, partnerID uuid.UUID) ([]dto.OrderResponse, error)
}

// OrderOptions tunes order workflow rules.
type OrderOptions struct {
	// StrictTransitions rejects status changes that are not legal successors
	// of the current status. When false any known status is accepted.
	StrictTransitions bool
}

type orderService struct {
	repo          repository.OrderRepository
	users         repository.UserRepository
	products      repository.ProductRepository
	inventory     repository.InventoryRepository
	notifications repository.NotificationRepository
	dispatcher    Dispatcher
	opts          OrderOptions
	now           func() time.Time
}

func NewOrderService(
	repo repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	notifications repository.NotificationRepository,
	dispatcher Dispatcher,
	opts OrderOptions,
) OrderService {
	return &orderService{
		repo:          repo,
		users:         users,
		products:      products,
		inventory:     inventory,
		notifications: notifications,
		dispatcher:    dispatcher,
		opts:          opts,
		now:           time.Now,
	}
}

// ── Create ────────────────────────────────────────────────────────────────────
//   1. Validate the distributor and resolve every line's canonical price
//   2. BEGIN TX: nextval order number, insert order+items, insert distributor notification
//   3. COMMIT, then enqueue the notification for delivery

func (s *orderService) Create(ctx context.Context, retailerID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, apierror.Validation("order must contain at least one item")
	}
	distributorID, err := parseID(req.DistributorID, "distributorId")
	if err != nil {
		return nil, err
	}
	distributor, err := s.users.FindByID(ctx, distributorID)
	if err != nil {
		return nil, lookupErr(err, "distributor")
	}
	if distributor.Role != model.RoleDistributor || !distributor.IsActive {
		return nil, apierror.Validation("distributorId does not reference an active distributor")
	}
	retailer, err := s.users.FindByID(ctx, retailerID)
	if err != nil {
		return nil, lookupErr(err, "retailer")
	}

	mode := model.DeliveryDelivery
	if req.DeliveryMode != "" {
		mode = model.DeliveryMode(req.DeliveryMode)
		if !mode.Valid() {
			return nil, apierror.Validation("deliveryMode must be pickup or delivery")
		}
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, apierror.Validation("quantity must be positive")
		}
		productID, err := parseID(it.ProductID, "productId")
		if err != nil {
			return nil, err
		}
		price, err := s.resolveUnitPrice(ctx, distributorID, productID, it.UnitPrice)
		if err != nil {
			return nil, err
		}
		line := price.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		total = total.Add(line)
		items = append(items, model.OrderItem{
			ProductID:  productID,
			Quantity:   it.Quantity,
			UnitPrice:  price,
			TotalPrice: line,
		})
	}

	now := s.now()
	order := model.Order{
		RetailerID:    retailerID,
		DistributorID: distributorID,
		Status:        model.OrderPending,
		DeliveryMode:  mode,
		TotalAmount:   total,
		Notes:         req.Notes,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var note model.Notification

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}
		order.OrderNumber = formatOrderNumber(now, seq)
		if err := s.repo.Create(ctx, tx, &order); err != nil {
			return err
		}
		note = model.Notification{
			UserID:  distributorID,
			Message: fmt.Sprintf("New order %s from %s", order.OrderNumber, retailer.DisplayName()),
			Type:    model.NotificationOrderPlaced,
		}
		return s.notifications.Create(ctx, tx, &note)
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("order number collision, retry the request")
		}
		return nil, txErr
	}

	enqueueNotifications(ctx, s.dispatcher, note.ID)
	log.Info().
		Str("order_number", order.OrderNumber).
		Str("retailer_id", retailerID.String()).
		Str("distributor_id", distributorID.String()).
		Str("total", total.StringFixed(2)).
		Msg("order created")
	return orderToResponse(&order), nil
}

// resolveUnitPrice picks the distributor's available inventory price, then the
// product base price. The client price is only used when neither exists.
func (s *orderService) resolveUnitPrice(ctx context.Context, distributorID, productID uuid.UUID, clientPrice decimal.Decimal) (decimal.Decimal, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, apierror.NotFound("product %s not found", productID)
		}
		return decimal.Zero, err
	}
	if !product.IsActive {
		return decimal.Zero, apierror.Validation("product %s is inactive", product.Name)
	}

	var price decimal.Decimal
	inv, err := s.inventory.Find(ctx, distributorID, productID)
	switch {
	case err == nil && inv.IsAvailable && inv.SellingPrice.IsPositive():
		price = inv.SellingPrice
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return decimal.Zero, err
	case product.BasePrice.IsPositive():
		price = product.BasePrice
	case clientPrice.IsPositive():
		return clientPrice.Round(2), nil
	default:
		return decimal.Zero, apierror.Validation("no price available for product %s", product.Name)
	}

	if clientPrice.IsPositive() && !clientPrice.Equal(price) {
		log.Warn().
			Str("product_id", productID.String()).
			Str("client_price", clientPrice.String()).
			Str("resolved_price", price.String()).
			Msg("order item price differs from catalog, using catalog price")
	}
	return price.Round(2), nil
}

func formatOrderNumber(now time.Time, seq int64) string {
	return fmt.Sprintf("ORD-%d-%06d", now.Year(), seq)
}

// ── Status & delivery ─────────────────────────────────────────────────────────

func (s *orderService) UpdateStatus(ctx context.Context, distributorID, orderID uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	next := model.OrderStatus(req.Status)
	if !next.Valid() {
		return nil, apierror.Validation("unknown order status %q", req.Status)
	}
	order, err := s.ownedOrder(ctx, distributorID, orderID)
	if err != nil {
		return nil, err
	}
	if s.opts.StrictTransitions && !order.Status.CanTransitionTo(next) {
		return nil, apierror.Conflict("cannot move order %s from %s to %s", order.OrderNumber, order.Status, next)
	}

	var note model.Notification
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatus(ctx, tx, order.ID, order.Status, next); err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				return apierror.Conflict("order %s changed status concurrently", order.OrderNumber)
			}
			return err
		}
		note = model.Notification{
			UserID:  order.RetailerID,
			Message: fmt.Sprintf("Order %s status updated to: %s", order.OrderNumber, next),
			Type:    model.NotificationOrderStatusUpdate,
		}
		return s.notifications.Create(ctx, tx, &note)
	})
	if txErr != nil {
		return nil, txErr
	}
	enqueueNotifications(ctx, s.dispatcher, note.ID)

	log.Info().
		Str("order_number", order.OrderNumber).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Msg("order status updated")
	order.Status = next
	order.UpdatedAt = s.now()
	return orderToResponse(order), nil
}

func (s *orderService) UpdateDeliveryMode(ctx context.Context, distributorID, orderID uuid.UUID, req dto.UpdateDeliveryModeRequest) (*dto.OrderResponse, error) {
	mode := model.DeliveryMode(req.DeliveryMode)
	if !mode.Valid() {
		return nil, apierror.Validation("deliveryMode must be pickup or delivery")
	}
	order, err := s.ownedOrder(ctx, distributorID, orderID)
	if err != nil {
		return nil, err
	}
	if s.opts.StrictTransitions && order.Status.IsTerminal() {
		return nil, apierror.Conflict("order %s is already %s", order.OrderNumber, order.Status)
	}

	var note model.Notification
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateDeliveryMode(ctx, tx, order.ID, mode); err != nil {
			return err
		}
		note = model.Notification{
			UserID:  order.RetailerID,
			Message: fmt.Sprintf("Order %s delivery mode changed to: %s", order.OrderNumber, mode),
			Type:    model.NotificationDeliveryUpdate,
		}
		return s.notifications.Create(ctx, tx, &note)
	})
	if txErr != nil {
		return nil, txErr
	}
	enqueueNotifications(ctx, s.dispatcher, note.ID)

	order.DeliveryMode = mode
	order.UpdatedAt = s.now()
	return orderToResponse(order), nil
}

// ownedOrder loads an order and checks that distributorID fulfils it.
func (s *orderService) ownedOrder(ctx context.Context, distributorID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	if order.DistributorID != distributorID {
		return nil, apierror.Forbidden("order belongs to another distributor")
	}
	return order, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *orderService) List(ctx context.Context, userID uuid.UUID, role model.Role) ([]dto.OrderResponse, error) {
	var (
		orders []model.Order
		err    error
	)
	switch role {
	case model.RoleRetailer:
		orders, err = s.repo.ListByRetailer(ctx, userID)
	case model.RoleDistributor:
		orders, err = s.repo.ListByDistributor(ctx, userID)
	default:
		return nil, apierror.Forbidden("only retailers and distributors have orders")
	}
	if err != nil {
		return nil, err
	}
	return ordersToResponse(orders), nil
}

func (s *orderService) Get(ctx context.Context, userID uuid.UUID, role model.Role, orderID uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	if !canReadOrder(order, userID, role) {
		return nil, apierror.Forbidden("not a participant of this order")
	}
	return orderToResponse(order), nil
}

func (s *orderService) History(ctx context.Context, userID uuid.UUID, role model.Role, partnerID uuid.UUID) ([]dto.OrderResponse, error) {
	partner, err := s.users.FindByID(ctx, partnerID)
	if err != nil {
		return nil, lookupErr(err, "partner")
	}
	var orders []model.Order
	switch {
	case role == model.RoleRetailer && partner.Role == model.RoleDistributor:
		orders, err = s.repo.ListBetween(ctx, userID, partnerID)
	case role == model.RoleDistributor && partner.Role == model.RoleRetailer:
		orders, err = s.repo.ListBetween(ctx, partnerID, userID)
	default:
		return nil, apierror.Forbidden("order history is only kept between retailers and distributors")
	}
	if err != nil {
		return nil, err
	}
	return ordersToResponse(orders), nil
}

func canReadOrder(o *model.Order, userID uuid.UUID, role model.Role) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleRetailer:
		return o.RetailerID == userID
	case model.RoleDistributor:
		return o.DistributorID == userID
	}
	return false
}
