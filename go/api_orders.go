package posserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/retail-pos/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/Apurer/retail-pos/internal/domains/orders/ports"
)

// OrderAPI serves the order history. Sales are normally created through cart checkout.
type OrderAPI struct {
	service  orderports.Service
	location *time.Location
	now      func() time.Time
}

// NewOrderAPI creates an OrderAPI; loc decides which calendar day "today" is.
func NewOrderAPI(service orderports.Service, loc *time.Location) OrderAPI {
	if loc == nil {
		loc = time.UTC
	}
	return OrderAPI{service: service, location: loc, now: time.Now}
}

// Post /api/v1/orders
// Record an order directly, used for back-office corrections
func (api *OrderAPI) AddOrder(c *gin.Context) {
	var payload orderhttpmapper.OrderPayload
	if !bindPayload(c, &payload) {
		return
	}
	saved, err := api.service.Add(c.Request.Context(), orderhttpmapper.ToDomainOrder(0, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(saved))
}

// Get /api/v1/orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/v1/orders/today
func (api *OrderAPI) ListTodayOrders(c *gin.Context) {
	orders, err := api.service.ListToday(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/v1/orders/today/total
func (api *OrderAPI) GetTodayTotal(c *gin.Context) {
	total, err := api.service.SumTodayTotal(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.TodayTotal{
		Date:  api.now().In(api.location).Format(time.DateOnly),
		Total: total,
	})
}

// Get /api/v1/orders/:orderId
func (api *OrderAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Put /api/v1/orders/:orderId
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload orderhttpmapper.OrderPayload
	if !bindPayload(c, &payload) {
		return
	}
	updated, err := api.service.Update(c.Request.Context(), orderhttpmapper.ToDomainOrder(id, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(updated))
}

// Delete /api/v1/orders/:orderId
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	noContent(c)
}
