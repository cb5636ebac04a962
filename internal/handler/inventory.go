package handler

import (
	"net/http"

	"auromart/internal/dto"
	"auromart/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) List(c *gin.Context) {
	userID, _ := currentUser(c)
	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Upsert(c *gin.Context) {
	var req dto.UpsertInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.svc.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
