package service

import (
	"context"
	"testing"
	"time"

	"auromart/internal/apierror"
	"auromart/internal/infra"
	"auromart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoiceFixture() (*invoiceService, *stubInvoiceRepo, *fakeDispatcher, *model.Order) {
	order := &model.Order{
		ID: uuid.New(), OrderNumber: "ORD-2026-000007",
		RetailerID: uuid.New(), DistributorID: uuid.New(),
		Status: model.OrderConfirmed, TotalAmount: decimal.RequireFromString("12.00"),
	}
	invoices := newStubInvoiceRepo()
	dispatcher := &fakeDispatcher{}
	store := &fakeStore{resolved: map[string]*infra.StoredPDF{
		"/invoices/INV-2026-000001.pdf": {Path: "/invoices/INV-2026-000001.pdf"},
	}}
	svc := NewInvoiceService(invoices, newStubOrderRepo(order), store, dispatcher).(*invoiceService)
	svc.now = func() time.Time { return fixedNow }
	return svc, invoices, dispatcher, order
}

func TestCreateInvoice(t *testing.T) {
	svc, invoices, dispatcher, order := newInvoiceFixture()
	ctx := context.Background()

	resp, err := svc.Create(ctx, order.DistributorID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-000001", resp.InvoiceNumber)
	assert.Nil(t, resp.PDFURL)
	assert.Len(t, invoices.invoices, 1)
	assert.Equal(t, []uuid.UUID{uuid.MustParse(resp.ID)}, dispatcher.invoices)

	_, err = svc.Create(ctx, order.DistributorID, order.ID)
	assert.ErrorIs(t, err, apierror.ErrConflict, "one invoice per order")
}

func TestCreateInvoice_Rejections(t *testing.T) {
	svc, _, _, order := newInvoiceFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, apierror.ErrForbidden)

	_, err = svc.Create(ctx, order.DistributorID, uuid.New())
	assert.ErrorIs(t, err, apierror.ErrNotFound)

	svc.orders.(*stubOrderRepo).orders[order.ID].Status = model.OrderCancelled
	_, err = svc.Create(ctx, order.DistributorID, order.ID)
	assert.ErrorIs(t, err, apierror.ErrConflict)
}

func TestDownloadInvoice(t *testing.T) {
	svc, invoices, _, order := newInvoiceFixture()
	ctx := context.Background()
	resp, err := svc.Create(ctx, order.DistributorID, order.ID)
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.Download(ctx, order.RetailerID, model.RoleRetailer, id)
	assert.ErrorIs(t, err, apierror.ErrNotFound, "PDF not rendered yet")

	loc := "/invoices/INV-2026-000001.pdf"
	invoices.invoices[id].PDFURL = &loc

	pdf, err := svc.Download(ctx, order.RetailerID, model.RoleRetailer, id)
	require.NoError(t, err)
	assert.Equal(t, loc, pdf.Path)

	_, err = svc.Download(ctx, uuid.New(), model.RoleRetailer, id)
	assert.ErrorIs(t, err, apierror.ErrForbidden)

	gone := "/invoices/missing.pdf"
	invoices.invoices[id].PDFURL = &gone
	_, err = svc.Download(ctx, order.DistributorID, model.RoleDistributor, id)
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestGetInvoiceForOrder(t *testing.T) {
	svc, _, _, order := newInvoiceFixture()
	ctx := context.Background()

	_, err := svc.GetForOrder(ctx, order.RetailerID, model.RoleRetailer, order.ID)
	assert.ErrorIs(t, err, apierror.ErrNotFound)

	_, err = svc.Create(ctx, order.DistributorID, order.ID)
	require.NoError(t, err)

	got, err := svc.GetForOrder(ctx, order.RetailerID, model.RoleRetailer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), got.OrderID)
}
