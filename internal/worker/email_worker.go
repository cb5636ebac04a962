package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"auromart/internal/infra"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type EmailJobPayload struct {
	ToEmail   string `json:"to_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	InvoiceID string `json:"invoice_id,omitempty"`
}

// InvoiceMailer is satisfied by *infra.Mailer.
type InvoiceMailer interface {
	SendInvoice(to, subject, body, filename string, pdf []byte) error
}

// EmailWorker re-renders the invoice PDF and mails it, so the job works the
// same for local and S3 storage.
type EmailWorker struct {
	mailer   InvoiceMailer
	invoices repository.InvoiceRepository
	orders   repository.OrderRepository
}

func NewEmailWorker(mailer InvoiceMailer, invoices repository.InvoiceRepository, orders repository.OrderRepository) *EmailWorker {
	return &EmailWorker{mailer: mailer, invoices: invoices, orders: orders}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Permanent(fmt.Errorf("email_worker: invalid payload: %w", err))
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	var (
		pdf      []byte
		filename string
	)
	if payload.InvoiceID != "" {
		id, err := uuid.Parse(payload.InvoiceID)
		if err != nil {
			return Permanent(fmt.Errorf("email_worker: invalid invoice_id %q", payload.InvoiceID))
		}
		inv, err := w.invoices.FindByID(ctx, id)
		if err != nil {
			return err
		}
		order, err := w.orders.FindByID(ctx, inv.OrderID)
		if err != nil {
			return err
		}
		if pdf, err = infra.GenerateInvoicePDF(inv, order); err != nil {
			return Permanent(err)
		}
		filename = inv.InvoiceNumber + ".pdf"
	}

	if err := w.mailer.SendInvoice(payload.ToEmail, payload.Subject, payload.Body, filename, pdf); err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Str("invoice_id", payload.InvoiceID).Msg("email_worker: sent")
	return nil
}
