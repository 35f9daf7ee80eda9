package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/retail-pos/internal/domains/products/adapters/http/mapper"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

// ProductAPI serves the catalogue and inventory endpoints.
type ProductAPI struct {
	service productports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service productports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /api/v1/products
// Add a product to the catalogue
func (api *ProductAPI) AddProduct(c *gin.Context) {
	var payload producthttpmapper.ProductPayload
	if !bindPayload(c, &payload) {
		return
	}
	product, err := producthttpmapper.ToDomainProduct(0, payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	saved, err := api.service.Add(c.Request.Context(), product)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, producthttpmapper.FromDomainProduct(saved))
}

// Get /api/v1/products
func (api *ProductAPI) ListProducts(c *gin.Context) {
	products, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProducts(products))
}

// Get /api/v1/products/low-stock
// Products with 0 < quantity < 10
func (api *ProductAPI) ListLowStock(c *gin.Context) {
	products, err := api.service.ListLowStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProducts(products))
}

// Get /api/v1/products/out-of-stock
func (api *ProductAPI) ListOutOfStock(c *gin.Context) {
	products, err := api.service.ListOutOfStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProducts(products))
}

// Get /api/v1/products/search?q=
// Case-insensitive match on name or category
func (api *ProductAPI) SearchProducts(c *gin.Context) {
	products, err := api.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProducts(products))
}

// Get /api/v1/products/:productId
func (api *ProductAPI) GetProductById(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(product))
}

// Put /api/v1/products/:productId
// Replace a product
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload producthttpmapper.ProductPayload
	if !bindPayload(c, &payload) {
		return
	}
	product, err := producthttpmapper.ToDomainProduct(id, payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	updated, err := api.service.Update(c.Request.Context(), product)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(updated))
}

// Delete /api/v1/products/:productId
// Deleting an absent product succeeds
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	noContent(c)
}

// Get /api/v1/inventory?filter=all|low|out
func (api *ProductAPI) GetInventory(c *gin.Context) {
	filter, err := productdomain.ParseInventoryFilter(c.Query("filter"))
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	inventory, err := api.service.Inventory(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainInventory(inventory))
}
