package posserver

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestCheckoutFlow(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, adminUsername, adminPassword)
	coffee := srv.seedProduct(t, "Coffee", "2.50", 3)
	bagel := srv.seedProduct(t, "Bagel", "1.25", 20)

	opened := srv.do(t, http.MethodPost, "/api/v1/carts", token, nil)
	require.Equal(t, http.StatusCreated, opened.Code)
	cartID := decode[map[string]any](t, opened)["id"].(string)
	items := "/api/v1/carts/" + cartID + "/items"

	require.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, items, token, map[string]any{"productId": coffee.ID, "quantity": 2}).Code)
	require.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, items, token, map[string]any{"productId": bagel.ID}).Code)

	tooMany := srv.do(t, http.MethodPost, items, token, map[string]any{"productId": coffee.ID, "quantity": 2})
	require.Equal(t, http.StatusConflict, tooMany.Code)
	shortage := decode[apierrors.ProblemDetail](t, tooMany)
	assert.Equal(t, apierrors.TypeOutOfStock, shortage.Type)
	assert.EqualValues(t, coffee.ID, shortage.Extensions["productId"])

	cart := decode[map[string]any](t, srv.do(t, http.MethodGet, "/api/v1/carts/"+cartID, token, nil))
	assert.Equal(t, "6.25", cart["total"])

	checkout := srv.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", token, map[string]any{})
	require.Equal(t, http.StatusCreated, checkout.Code, checkout.Body.String())
	order := decode[map[string]any](t, checkout)
	assert.Equal(t, "Walk-in Customer", order["customerName"])
	assert.Equal(t, "6.25", order["total"])
	assert.Len(t, order["lines"], 2)

	left, err := srv.products.GetByID(context.Background(), coffee.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, left.Quantity)

	after := decode[map[string]any](t, srv.do(t, http.MethodGet, "/api/v1/carts/"+cartID, token, nil))
	assert.Empty(t, after["lines"])

	empty := srv.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, empty.Code)
	assert.Equal(t, apierrors.TypeEmptyCart, decode[apierrors.ProblemDetail](t, empty).Type)

	total := decode[map[string]any](t, srv.do(t, http.MethodGet, "/api/v1/orders/today/total", token, nil))
	assert.True(t, decimal.RequireFromString(total["total"].(string)).Equal(decimal.RequireFromString("6.25")))

	dashboard := srv.do(t, http.MethodGet, "/api/v1/reports/dashboard", token, nil)
	require.Equal(t, http.StatusOK, dashboard.Code)
	summary := decode[map[string]any](t, dashboard)
	assert.EqualValues(t, 1, summary["todayOrders"])
	assert.EqualValues(t, 2, summary["totalProducts"])
	assert.EqualValues(t, 1, summary["lowStockCount"])

	sales := srv.do(t, http.MethodGet, "/api/v1/reports/sales?filter=all", token, nil)
	require.Equal(t, http.StatusOK, sales.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, sales)["count"])
}

func TestCartErrors(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t, adminUsername, adminPassword)
	milk := srv.seedProduct(t, "Milk", "1.00", 0)

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/v1/carts/missing", token, nil).Code)

	cartID := decode[map[string]any](t, srv.do(t, http.MethodPost, "/api/v1/carts", token, nil))["id"].(string)
	items := "/api/v1/carts/" + cartID + "/items"

	outOfStock := srv.do(t, http.MethodPost, items, token, map[string]any{"productId": milk.ID, "quantity": 1})
	assert.Equal(t, http.StatusConflict, outOfStock.Code)

	unknown := srv.do(t, http.MethodPost, items, token, map[string]any{"productId": 999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, unknown.Code)

	invalid := srv.do(t, http.MethodPost, items, token, map[string]any{"productId": 0})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	notInCart := srv.do(t, http.MethodDelete, items+"/"+itoa(milk.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, notInCart.Code)

	cleared := srv.do(t, http.MethodDelete, items, token, nil)
	assert.Equal(t, http.StatusOK, cleared.Code)

	badFilter := srv.do(t, http.MethodGet, "/api/v1/reports/sales?filter=week", token, nil)
	assert.Equal(t, http.StatusBadRequest, badFilter.Code)
}
