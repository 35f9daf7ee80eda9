package posserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/retail-pos/internal/config"
	employeememory "github.com/Apurer/retail-pos/internal/domains/employees/adapters/memory"
	employeeapp "github.com/Apurer/retail-pos/internal/domains/employees/application"
	ordermemory "github.com/Apurer/retail-pos/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/retail-pos/internal/domains/orders/application"
	productmemory "github.com/Apurer/retail-pos/internal/domains/products/adapters/memory"
	productapp "github.com/Apurer/retail-pos/internal/domains/products/application"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	reportapp "github.com/Apurer/retail-pos/internal/domains/reports/application"
	salesmemory "github.com/Apurer/retail-pos/internal/domains/sales/adapters/memory"
	salesmessaging "github.com/Apurer/retail-pos/internal/domains/sales/adapters/messaging"
	salesworkflows "github.com/Apurer/retail-pos/internal/domains/sales/adapters/workflows"
	salesapp "github.com/Apurer/retail-pos/internal/domains/sales/application"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	suppliermemory "github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/memory"
	supplierapp "github.com/Apurer/retail-pos/internal/domains/suppliers/application"
	usermemory "github.com/Apurer/retail-pos/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/retail-pos/internal/domains/users/application"
	userdomain "github.com/Apurer/retail-pos/internal/domains/users/domain"
	"github.com/Apurer/retail-pos/internal/platform/clock"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

type testServer struct {
	router   *gin.Engine
	products *productmemory.Repository
	orders   *ordermemory.Repository
	users    *userapp.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	userdomain.HashCost = bcrypt.MinCost

	productRepo := productmemory.NewRepository()
	orderRepo := ordermemory.NewRepository()

	products := productapp.NewService(productRepo)
	orders := orderapp.NewService(orderRepo, orderapp.WithWalkInLabel("Walk-in Customer"))
	recorder := salesapp.NewRecorder(salesmemory.NewUnitOfWork(productRepo, orderRepo), time.Now)
	checkout := salesworkflows.NewInlineCheckout(recorder, salesmessaging.NoopPublisher{}, nil)
	sales := salesapp.NewService(salesmemory.NewCartStore(), productRepo, checkout,
		salesapp.WithCustomerPolicy(salesdomain.CustomerPolicy{WalkInLabel: "Walk-in Customer"}))
	users := userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore())
	_, _, err := users.EnsureAdmin(context.Background(), adminUsername, adminPassword)
	require.NoError(t, err)

	handlers := ApiHandleFunctions{
		AuthAPI:     NewAuthAPI(users),
		UserAPI:     NewUserAPI(users),
		ProductAPI:  NewProductAPI(products),
		SupplierAPI: NewSupplierAPI(supplierapp.NewService(suppliermemory.NewRepository())),
		EmployeeAPI: NewEmployeeAPI(employeeapp.NewService(employeememory.NewRepository())),
		OrderAPI:    NewOrderAPI(orders, time.UTC),
		CartAPI:     NewCartAPI(sales),
		ReportAPI:   NewReportAPI(reportapp.NewService(products, orders)),
		POSAPI:      NewPOSAPI(clock.NewTicker(config.Clock{Interval: 10 * time.Millisecond}), nil),
	}
	router := NewRouterWithGinEngine(gin.New(), handlers)
	return &testServer{router: router, products: productRepo, orders: orderRepo, users: users}
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (s *testServer) seedProduct(t *testing.T, name string, price string, qty int32) *productdomain.Product {
	t.Helper()
	product, err := productdomain.NewProduct(0, name, "General", decimal.RequireFromString(price), qty, "")
	require.NoError(t, err)
	saved, err := s.products.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
