package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/infra"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type InvoiceService interface {
	// Create stores the invoice row and hands PDF rendering to the invoice worker.
	Create(ctx context.Context, distributorID, orderID uuid.UUID) (*dto.InvoiceResponse, error)
	GetForOrder(ctx context.Context, userID uuid.UUID, role model.Role, orderID uuid.UUID) (*dto.InvoiceResponse, error)
	Download(ctx context.Context, userID uuid.UUID, role model.Role, invoiceID uuid.UUID) (*infra.StoredPDF, error)
}

type invoiceService struct {
	repo       repository.InvoiceRepository
	orders     repository.OrderRepository
	store      infra.InvoiceStore
	dispatcher Dispatcher
	now        func() time.Time
}

func NewInvoiceService(repo repository.InvoiceRepository, orders repository.OrderRepository, store infra.InvoiceStore, dispatcher Dispatcher) InvoiceService {
	return &invoiceService{repo: repo, orders: orders, store: store, dispatcher: dispatcher, now: time.Now}
}

func (s *invoiceService) Create(ctx context.Context, distributorID, orderID uuid.UUID) (*dto.InvoiceResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	if order.DistributorID != distributorID {
		return nil, apierror.Forbidden("order belongs to another distributor")
	}
	if order.Status == model.OrderCancelled {
		return nil, apierror.Conflict("cannot invoice cancelled order %s", order.OrderNumber)
	}
	if _, err := s.repo.FindByOrderID(ctx, orderID); err == nil {
		return nil, apierror.Conflict("order %s is already invoiced", order.OrderNumber)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := s.now()
	inv := model.Invoice{OrderID: orderID, CreatedAt: now}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextInvoiceNumber(ctx, tx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = fmt.Sprintf("INV-%d-%06d", now.Year(), seq)
		return s.repo.Create(ctx, tx, &inv)
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("order %s is already invoiced", order.OrderNumber)
		}
		return nil, txErr
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueInvoice(ctx, inv.ID); err != nil {
			log.Warn().Err(err).Str("invoice_id", inv.ID.String()).Msg("failed to enqueue invoice job")
		}
	}
	log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("order_number", order.OrderNumber).
		Msg("invoice created")
	return invoiceToResponse(&inv), nil
}

func (s *invoiceService) GetForOrder(ctx context.Context, userID uuid.UUID, role model.Role, orderID uuid.UUID) (*dto.InvoiceResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	if !canReadOrder(order, userID, role) {
		return nil, apierror.Forbidden("not a participant of this order")
	}
	inv, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, "invoice")
	}
	return invoiceToResponse(inv), nil
}

func (s *invoiceService) Download(ctx context.Context, userID uuid.UUID, role model.Role, invoiceID uuid.UUID) (*infra.StoredPDF, error) {
	inv, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, lookupErr(err, "invoice")
	}
	order, err := s.orders.FindByID(ctx, inv.OrderID)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	if !canReadOrder(order, userID, role) {
		return nil, apierror.Forbidden("not a participant of this order")
	}
	if inv.PDFURL == nil || *inv.PDFURL == "" {
		return nil, apierror.NotFound("invoice %s PDF is not ready yet", inv.InvoiceNumber)
	}
	if s.store == nil {
		return nil, apierror.NotFound("invoice storage is not configured")
	}
	pdf, err := s.store.Resolve(ctx, *inv.PDFURL)
	if err != nil {
		if errors.Is(err, infra.ErrInvoiceNotStored) {
			return nil, apierror.NotFound("invoice %s PDF not found", inv.InvoiceNumber)
		}
		return nil, err
	}
	return pdf, nil
}
