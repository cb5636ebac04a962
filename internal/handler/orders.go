package handler

import (
	"net/http"

	"auromart/internal/dto"
	"auromart/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct {
	orders   service.OrderService
	invoices service.InvoiceService
}

func NewOrdersHandler(orders service.OrderService, invoices service.InvoiceService) *OrdersHandler {
	return &OrdersHandler{orders: orders, invoices: invoices}
}

// Create godoc
// @Summary      Place an order with a distributor
// @Description  Prices are resolved server side. The order, its items and the distributor notification are stored atomically.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateOrderRequest  true  "order"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  apierror.APIError
// @Failure      404   {object}  apierror.APIError
// @Router       /api/orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.orders.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List the caller's orders, newest first
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.OrderResponse
// @Failure      403  {object}  apierror.APIError
// @Router       /api/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	userID, role := currentUser(c)
	resp, err := h.orders.List(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, role := currentUser(c)
	resp, err := h.orders.Get(c.Request.Context(), userID, role, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Move an order to a new status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "order id"
// @Param        body  body      dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  apierror.APIError
// @Router       /api/orders/{id}/status [patch]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.orders.UpdateStatus(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) UpdateDeliveryMode(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDeliveryModeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.orders.UpdateDeliveryMode(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) History(c *gin.Context) {
	partnerID, ok := uuidParam(c, "partnerId")
	if !ok {
		return
	}
	userID, role := currentUser(c)
	resp, err := h.orders.History(c.Request.Context(), userID, role, partnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Invoices ──────────────────────────────────────────────────────────────────

func (h *OrdersHandler) CreateInvoice(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.invoices.Create(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) GetInvoice(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, role := currentUser(c)
	resp, err := h.invoices.GetForOrder(c.Request.Context(), userID, role, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadInvoicePDF streams a locally stored PDF or redirects to object storage.
func (h *OrdersHandler) DownloadInvoicePDF(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, role := currentUser(c)
	pdf, err := h.invoices.Download(c.Request.Context(), userID, role, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if pdf.URL != "" {
		c.Redirect(http.StatusFound, pdf.URL)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(pdf.Path, id.String()+".pdf")
}
