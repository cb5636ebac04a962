package handler

import (
	"net/http"

	"auromart/internal/dto"
	"auromart/internal/service"

	"github.com/gin-gonic/gin"
)

// ActivityHandler serves notifications, analytics and search history.
type ActivityHandler struct {
	notifications service.NotificationService
	analytics     service.AnalyticsService
	search        service.SearchService
}

func NewActivityHandler(notifications service.NotificationService, analytics service.AnalyticsService, search service.SearchService) *ActivityHandler {
	return &ActivityHandler{notifications: notifications, analytics: analytics, search: search}
}

func (h *ActivityHandler) Notifications(c *gin.Context) {
	userID, _ := currentUser(c)
	resp, err := h.notifications.ListUndelivered(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ActivityHandler) NotificationHistory(c *gin.Context) {
	userID, _ := currentUser(c)
	resp, err := h.notifications.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ActivityHandler) MarkDelivered(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.notifications.MarkDelivered(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stats godoc
// @Summary      Role-scoped order aggregates
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/analytics/stats [get]
func (h *ActivityHandler) Stats(c *gin.Context) {
	userID, role := currentUser(c)
	resp, err := h.analytics.Stats(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ActivityHandler) SearchHistory(c *gin.Context) {
	var q dto.SearchHistoryQuery
	if !bindQuery(c, &q) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.search.History(c.Request.Context(), userID, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ActivityHandler) RecordSearch(c *gin.Context) {
	var req dto.RecordSearchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.search.Record(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
