//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/Apurer/retail-pos/test/pact"

	posserver "github.com/Apurer/retail-pos/go"
	"github.com/Apurer/retail-pos/internal/config"
	employeememory "github.com/Apurer/retail-pos/internal/domains/employees/adapters/memory"
	employeeobs "github.com/Apurer/retail-pos/internal/domains/employees/adapters/observability"
	employeeapp "github.com/Apurer/retail-pos/internal/domains/employees/application"
	ordermemory "github.com/Apurer/retail-pos/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/retail-pos/internal/domains/orders/adapters/observability"
	orderapp "github.com/Apurer/retail-pos/internal/domains/orders/application"
	productmemory "github.com/Apurer/retail-pos/internal/domains/products/adapters/memory"
	productobs "github.com/Apurer/retail-pos/internal/domains/products/adapters/observability"
	productapp "github.com/Apurer/retail-pos/internal/domains/products/application"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	reportobs "github.com/Apurer/retail-pos/internal/domains/reports/adapters/observability"
	reportapp "github.com/Apurer/retail-pos/internal/domains/reports/application"
	salesmemory "github.com/Apurer/retail-pos/internal/domains/sales/adapters/memory"
	salesmessaging "github.com/Apurer/retail-pos/internal/domains/sales/adapters/messaging"
	salesobs "github.com/Apurer/retail-pos/internal/domains/sales/adapters/observability"
	salesworkflows "github.com/Apurer/retail-pos/internal/domains/sales/adapters/workflows"
	salesapp "github.com/Apurer/retail-pos/internal/domains/sales/application"
	suppliermemory "github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/memory"
	supplierobs "github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/observability"
	supplierapp "github.com/Apurer/retail-pos/internal/domains/suppliers/application"
	usermemory "github.com/Apurer/retail-pos/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/retail-pos/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/retail-pos/internal/domains/users/application"
	userdomain "github.com/Apurer/retail-pos/internal/domains/users/domain"
	userports "github.com/Apurer/retail-pos/internal/domains/users/ports"
	"github.com/Apurer/retail-pos/internal/platform/clock"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRetailPOSProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	userdomain.HashCost = bcrypt.MinCost

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateAdminExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.login(t)
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.login(t)
			}
			return nil, nil
		},
		pacttest.StateCartReady: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.login(t)
				app.seedProduct(t)
				app.openCart(t, pacttest.CartQuantity)
			}
			return nil, nil
		},
		pacttest.StateCartEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.login(t)
				app.openCart(t, 0)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves a memory-backed POS whose state is rebuilt per provider state.
type contractProviderApp struct {
	mu       sync.RWMutex
	router   *gin.Engine
	products *productmemory.Repository
	sales    *salesapp.Service
	users    userports.Service
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()

	productRepo := productmemory.NewRepository()
	orderRepo := ordermemory.NewRepository()
	products := productapp.NewService(productRepo)
	orders := orderapp.NewService(orderRepo, orderapp.WithWalkInLabel("Walk-in Customer"))

	recorder := salesapp.NewRecorder(salesmemory.NewUnitOfWork(productRepo, orderRepo), time.Now)
	checkout := salesworkflows.NewInlineCheckout(recorder, salesmessaging.NoopPublisher{}, nil)
	sales := salesapp.NewService(salesmemory.NewCartStore(), productRepo, checkout,
		salesapp.WithIDGenerator(func() string { return pacttest.CartID }))

	users := userobs.New(userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore(),
		userapp.WithTokenGenerator(func() string { return pacttest.SessionToken })))
	_, _, err := users.EnsureAdmin(context.Background(), pacttest.AdminUsername, pacttest.AdminPassword)
	require.NoError(t, err)

	productService := productobs.New(products)
	orderService := orderobs.New(orders)
	handlers := posserver.ApiHandleFunctions{
		AuthAPI:     posserver.NewAuthAPI(users),
		UserAPI:     posserver.NewUserAPI(users),
		ProductAPI:  posserver.NewProductAPI(productService),
		SupplierAPI: posserver.NewSupplierAPI(supplierobs.New(supplierapp.NewService(suppliermemory.NewRepository()))),
		EmployeeAPI: posserver.NewEmployeeAPI(employeeobs.New(employeeapp.NewService(employeememory.NewRepository()))),
		OrderAPI:    posserver.NewOrderAPI(orderService, time.UTC),
		CartAPI:     posserver.NewCartAPI(salesobs.New(sales)),
		ReportAPI:   posserver.NewReportAPI(reportobs.New(reportapp.NewService(productService, orderService))),
		POSAPI:      posserver.NewPOSAPI(clock.NewTicker(config.Clock{Interval: time.Second}), nil),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = posserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.router = router
	a.products = productRepo
	a.sales = sales
	a.users = users
}

func (a *contractProviderApp) login(t testing.TB) {
	t.Helper()
	session, _, err := a.users.Login(context.Background(), pacttest.AdminUsername, pacttest.AdminPassword)
	require.NoError(t, err)
	require.Equal(t, pacttest.SessionToken, session.Token)
}

func (a *contractProviderApp) seedProduct(t testing.TB) {
	t.Helper()
	example := pacttest.ExistingProduct()
	product, err := productdomain.NewProduct(example.ID, example.Name, example.Category,
		decimal.RequireFromString(example.Price), example.Quantity, "")
	require.NoError(t, err)
	_, err = a.products.Save(context.Background(), product)
	require.NoError(t, err)
}

func (a *contractProviderApp) openCart(t testing.TB, quantity int32) {
	t.Helper()
	ctx := context.Background()
	cart, err := a.sales.NewCart(ctx)
	require.NoError(t, err)
	require.Equal(t, pacttest.CartID, cart.ID)
	if quantity > 0 {
		_, err = a.sales.AddToCart(ctx, cart.ID, pacttest.ExistingProductID, quantity)
		require.NoError(t, err)
	}
}
