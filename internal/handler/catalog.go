package handler

import (
	"net/http"

	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	categories   service.CategoryService
	products     service.ProductService
	partnerships service.PartnershipService
}

func NewCatalogHandler(categories service.CategoryService, products service.ProductService, partnerships service.PartnershipService) *CatalogHandler {
	return &CatalogHandler{categories: categories, products: products, partnerships: partnerships}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListProducts godoc
// @Summary      List active, in-stock products
// @Tags         catalog
// @Produce      json
// @Param        categoryId  query     string  false  "category filter"
// @Success      200         {array}   dto.AvailableProductResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.products.ListAvailable(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	var q dto.ProductSearchQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.products.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateProduct godoc
// @Summary      Create a product owned by the calling manufacturer
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateProductRequest  true  "product"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  apierror.APIError
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := currentUser(c)
	resp, err := h.products.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) ListDistributors(c *gin.Context) {
	var q dto.DirectoryQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.partnerships.ListDirectory(c.Request.Context(), model.RoleDistributor, q.Search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
