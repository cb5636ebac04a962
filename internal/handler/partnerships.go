package handler

import (
	"net/http"

	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/service"

	"github.com/gin-gonic/gin"
)

type PartnershipsHandler struct {
	partnerships service.PartnershipService
	favorites    service.FavoriteService
}

func NewPartnershipsHandler(partnerships service.PartnershipService, favorites service.FavoriteService) *PartnershipsHandler {
	return &PartnershipsHandler{partnerships: partnerships, favorites: favorites}
}

// Available godoc
// @Summary      Candidate partners for the caller's role
// @Description  retailer sees distributors, distributor sees retailers and manufacturers, manufacturer sees distributors. Users already requested are excluded.
// @Tags         partnerships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.PublicUserResponse
// @Router       /api/partners/available [get]
func (h *PartnershipsHandler) Available(c *gin.Context) {
	userID, role := currentUser(c)
	resp, err := h.partnerships.AvailablePartners(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Directory lists active users of one role, for the distributor-only
// retailer and manufacturer directories.
func (h *PartnershipsHandler) Directory(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.DirectoryQuery
		if !bindQuery(c, &q) {
			return
		}
		resp, err := h.partnerships.ListDirectory(c.Request.Context(), role, q.Search)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *PartnershipsHandler) Search(c *gin.Context) {
	var q dto.DirectoryQuery
	if !bindQuery(c, &q) {
		return
	}
	userID, role := currentUser(c)
	resp, err := h.partnerships.SearchPartners(c.Request.Context(), userID, role, q.Search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PartnershipsHandler) List(c *gin.Context) {
	userID, _ := currentUser(c)
	resp, err := h.partnerships.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PartnershipsHandler) Received(c *gin.Context) {
	userID, _ := currentUser(c)
	resp, err := h.partnerships.ListReceived(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PartnershipsHandler) Request(c *gin.Context) {
	var req dto.PartnershipRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.partnerships.SendRequest(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PartnershipsHandler) Respond(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.RespondPartnershipRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.partnerships.Respond(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Favorites ─────────────────────────────────────────────────────────────────

func (h *PartnershipsHandler) ListFavorites(c *gin.Context) {
	userID, _ := currentUser(c)
	resp, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PartnershipsHandler) AddFavorite(c *gin.Context) {
	var req dto.AddFavoriteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.favorites.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PartnershipsHandler) RemoveFavorite(c *gin.Context) {
	favID, ok := uuidParam(c, "favoriteUserId")
	if !ok {
		return
	}
	userID, _ := currentUser(c)
	if err := h.favorites.Remove(c.Request.Context(), userID, favID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PartnershipsHandler) CheckFavorite(c *gin.Context) {
	favID, ok := uuidParam(c, "favoriteUserId")
	if !ok {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.favorites.Check(c.Request.Context(), userID, favID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
