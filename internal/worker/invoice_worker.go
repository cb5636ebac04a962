package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auromart/internal/infra"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EmailEnqueuer is satisfied by *Dispatcher.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
	EnqueueNotification(ctx context.Context, id uuid.UUID) error
}

// InvoiceWorker renders the PDF for a freshly created invoice:
//  1. Load invoice and order (items, products, both parties)
//  2. Render the A4 PDF and save it to the InvoiceStore
//  3. Record the PDF location
//  4. Queue an e-mail to the retailer when SMTP is configured
//  5. Stamp sentAt and append an invoice_sent notification
type InvoiceWorker struct {
	invoices      repository.InvoiceRepository
	orders        repository.OrderRepository
	notifications repository.NotificationRepository
	store         infra.InvoiceStore
	queue         EmailEnqueuer
	emailEnabled  bool
	now           func() time.Time
}

func NewInvoiceWorker(
	invoices repository.InvoiceRepository,
	orders repository.OrderRepository,
	notifications repository.NotificationRepository,
	store infra.InvoiceStore,
	queue EmailEnqueuer,
	emailEnabled bool,
) *InvoiceWorker {
	return &InvoiceWorker{
		invoices:      invoices,
		orders:        orders,
		notifications: notifications,
		store:         store,
		queue:         queue,
		emailEnabled:  emailEnabled,
		now:           time.Now,
	}
}

func (w *InvoiceWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload InvoiceJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Permanent(fmt.Errorf("invoice_worker: invalid payload: %w", err))
	}
	id, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		return Permanent(fmt.Errorf("invoice_worker: invalid invoice_id %q", payload.InvoiceID))
	}

	inv, err := w.invoices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Permanent(fmt.Errorf("invoice_worker: invoice %s not found", id))
		}
		return err
	}
	if inv.SentAt != nil {
		return nil
	}
	order, err := w.orders.FindByID(ctx, inv.OrderID)
	if err != nil {
		return err
	}

	if inv.PDFURL == nil {
		pdf, err := infra.GenerateInvoicePDF(inv, order)
		if err != nil {
			return Permanent(err)
		}
		loc, err := w.store.Save(ctx, inv.InvoiceNumber+".pdf", pdf)
		if err != nil {
			return err
		}
		inv.PDFURL = &loc
		if err := w.invoices.Update(ctx, inv); err != nil {
			return err
		}
		log.Info().Str("invoice_number", inv.InvoiceNumber).Str("pdf", loc).Msg("invoice_worker: PDF stored")
	}

	// sentAt is persisted before the e-mail is queued so a retry never mails twice
	now := w.now()
	inv.SentAt = &now
	if err := w.invoices.Update(ctx, inv); err != nil {
		return err
	}

	if w.emailEnabled && order.Retailer != nil && order.Retailer.Email != "" {
		job := EmailJobPayload{
			ToEmail:   order.Retailer.Email,
			Subject:   fmt.Sprintf("Invoice %s for order %s", inv.InvoiceNumber, order.OrderNumber),
			Body:      fmt.Sprintf("Please find attached invoice %s.\nTotal: %s", inv.InvoiceNumber, order.TotalAmount.StringFixed(2)),
			InvoiceID: inv.ID.String(),
		}
		if err := w.queue.EnqueueEmail(ctx, job); err != nil {
			log.Warn().Err(err).Str("invoice_number", inv.InvoiceNumber).Msg("invoice_worker: failed to enqueue email")
		}
	}

	note := model.Notification{
		UserID:  order.RetailerID,
		Message: fmt.Sprintf("Invoice %s is ready for order %s", inv.InvoiceNumber, order.OrderNumber),
		Type:    model.NotificationInvoiceSent,
	}
	if err := w.notifications.Create(ctx, nil, &note); err != nil {
		log.Warn().Err(err).Str("invoice_number", inv.InvoiceNumber).Msg("invoice_worker: failed to append notification")
		return nil
	}
	if err := w.queue.EnqueueNotification(ctx, note.ID); err != nil {
		log.Warn().Err(err).Str("notification_id", note.ID.String()).Msg("invoice_worker: failed to enqueue notification")
	}
	return nil
}
