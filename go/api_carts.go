package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/retail-pos/internal/domains/orders/adapters/http/mapper"
	saleshttpmapper "github.com/Apurer/retail-pos/internal/domains/sales/adapters/http/mapper"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

// CartAPI drives the till: build a cart, then check it out into an order.
type CartAPI struct {
	service salesports.Service
}

func NewCartAPI(service salesports.Service) CartAPI {
	return CartAPI{service: service}
}

// Post /api/v1/carts
// Open an empty cart
func (api *CartAPI) NewCart(c *gin.Context) {
	cart, err := api.service.NewCart(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saleshttpmapper.FromDomainCart(cart))
}

// Get /api/v1/carts/:cartId
func (api *CartAPI) GetCart(c *gin.Context) {
	cart, err := api.service.GetCart(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromDomainCart(cart))
}

// Post /api/v1/carts/:cartId/items
// Add units of a product; adding an existing product increases its quantity
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload saleshttpmapper.AddItemPayload
	if !bindPayload(c, &payload) {
		return
	}
	cart, err := api.service.AddToCart(c.Request.Context(), c.Param("cartId"), payload.ProductID, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromDomainCart(cart))
}

// Delete /api/v1/carts/:cartId/items/:productId
func (api *CartAPI) RemoveItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	cart, err := api.service.RemoveFromCart(c.Request.Context(), c.Param("cartId"), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromDomainCart(cart))
}

// Delete /api/v1/carts/:cartId/items
func (api *CartAPI) ClearCart(c *gin.Context) {
	cart, err := api.service.ClearCart(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromDomainCart(cart))
}

// Post /api/v1/carts/:cartId/checkout
// Record the cart as one order and empty it. The body is optional.
func (api *CartAPI) Checkout(c *gin.Context) {
	var payload saleshttpmapper.CheckoutPayload
	if c.Request.ContentLength != 0 {
		if !bindPayload(c, &payload) {
			return
		}
	}
	order, err := api.service.Checkout(c.Request.Context(), c.Param("cartId"), payload.CustomerName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}
