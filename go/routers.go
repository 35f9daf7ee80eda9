// Package posserver exposes the point-of-sale use cases over HTTP/JSON.
package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasePath is the prefix of every versioned endpoint.
const BasePath = "/api/v1"

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Public routes skip the session check.
	Public bool
	// AdminOnly routes also require the ADMIN role.
	AdminOnly bool
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
// Session checks are applied when AuthAPI carries a user service.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := make([]gin.HandlerFunc, 0, 3)
		if !route.Public && handleFunctions.AuthAPI.enabled() {
			chain = append(chain, handleFunctions.AuthAPI.RequireSession)
			if route.AdminOnly {
				chain = append(chain, handleFunctions.AuthAPI.RequireAdmin)
			}
		}
		chain = append(chain, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without a backing API.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the AuthAPI part of the API
	AuthAPI AuthAPI
	// Routes for the UserAPI part of the API
	UserAPI UserAPI
	// Routes for the ProductAPI part of the API
	ProductAPI ProductAPI
	// Routes for the SupplierAPI part of the API
	SupplierAPI SupplierAPI
	// Routes for the EmployeeAPI part of the API
	EmployeeAPI EmployeeAPI
	// Routes for the OrderAPI part of the API
	OrderAPI OrderAPI
	// Routes for the CartAPI part of the API
	CartAPI CartAPI
	// Routes for the ReportAPI part of the API
	ReportAPI ReportAPI
	// Routes for the POSAPI part of the API
	POSAPI POSAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"HealthCheck", http.MethodGet, "/healthz", handleFunctions.POSAPI.HealthCheck, true, false},
		{"Login", http.MethodPost, BasePath + "/auth/login", handleFunctions.AuthAPI.Login, true, false},
		{"Logout", http.MethodPost, BasePath + "/auth/logout", handleFunctions.AuthAPI.Logout, false, false},
		{"CurrentUser", http.MethodGet, BasePath + "/auth/me", handleFunctions.AuthAPI.CurrentUser, false, false},

		{"CreateUser", http.MethodPost, BasePath + "/users", handleFunctions.UserAPI.CreateUser, false, true},
		{"ListUsers", http.MethodGet, BasePath + "/users", handleFunctions.UserAPI.ListUsers, false, true},
		{"GetUserByName", http.MethodGet, BasePath + "/users/:username", handleFunctions.UserAPI.GetUserByName, false, true},
		{"UpdateUser", http.MethodPut, BasePath + "/users/:username", handleFunctions.UserAPI.UpdateUser, false, true},
		{"DeleteUser", http.MethodDelete, BasePath + "/users/:username", handleFunctions.UserAPI.DeleteUser, false, true},

		{"AddProduct", http.MethodPost, BasePath + "/products", handleFunctions.ProductAPI.AddProduct, false, false},
		{"ListProducts", http.MethodGet, BasePath + "/products", handleFunctions.ProductAPI.ListProducts, false, false},
		{"ListLowStockProducts", http.MethodGet, BasePath + "/products/low-stock", handleFunctions.ProductAPI.ListLowStock, false, false},
		{"ListOutOfStockProducts", http.MethodGet, BasePath + "/products/out-of-stock", handleFunctions.ProductAPI.ListOutOfStock, false, false},
		{"SearchProducts", http.MethodGet, BasePath + "/products/search", handleFunctions.ProductAPI.SearchProducts, false, false},
		{"GetProductById", http.MethodGet, BasePath + "/products/:productId", handleFunctions.ProductAPI.GetProductById, false, false},
		{"UpdateProduct", http.MethodPut, BasePath + "/products/:productId", handleFunctions.ProductAPI.UpdateProduct, false, false},
		{"DeleteProduct", http.MethodDelete, BasePath + "/products/:productId", handleFunctions.ProductAPI.DeleteProduct, false, false},
		{"GetInventory", http.MethodGet, BasePath + "/inventory", handleFunctions.ProductAPI.GetInventory, false, false},

		{"AddSupplier", http.MethodPost, BasePath + "/suppliers", handleFunctions.SupplierAPI.AddSupplier, false, false},
		{"ListSuppliers", http.MethodGet, BasePath + "/suppliers", handleFunctions.SupplierAPI.ListSuppliers, false, false},
		{"SearchSuppliers", http.MethodGet, BasePath + "/suppliers/search", handleFunctions.SupplierAPI.SearchSuppliers, false, false},
		{"GetSupplierById", http.MethodGet, BasePath + "/suppliers/:supplierId", handleFunctions.SupplierAPI.GetSupplierById, false, false},
		{"UpdateSupplier", http.MethodPut, BasePath + "/suppliers/:supplierId", handleFunctions.SupplierAPI.UpdateSupplier, false, false},
		{"DeleteSupplier", http.MethodDelete, BasePath + "/suppliers/:supplierId", handleFunctions.SupplierAPI.DeleteSupplier, false, false},

		{"AddEmployee", http.MethodPost, BasePath + "/employees", handleFunctions.EmployeeAPI.AddEmployee, false, false},
		{"ListEmployees", http.MethodGet, BasePath + "/employees", handleFunctions.EmployeeAPI.ListEmployees, false, false},
		{"SearchEmployees", http.MethodGet, BasePath + "/employees/search", handleFunctions.EmployeeAPI.SearchEmployees, false, false},
		{"GetEmployeeById", http.MethodGet, BasePath + "/employees/:employeeId", handleFunctions.EmployeeAPI.GetEmployeeById, false, false},
		{"UpdateEmployee", http.MethodPut, BasePath + "/employees/:employeeId", handleFunctions.EmployeeAPI.UpdateEmployee, false, false},
		{"DeleteEmployee", http.MethodDelete, BasePath + "/employees/:employeeId", handleFunctions.EmployeeAPI.DeleteEmployee, false, false},

		{"AddOrder", http.MethodPost, BasePath + "/orders", handleFunctions.OrderAPI.AddOrder, false, false},
		{"ListOrders", http.MethodGet, BasePath + "/orders", handleFunctions.OrderAPI.ListOrders, false, false},
		{"ListTodayOrders", http.MethodGet, BasePath + "/orders/today", handleFunctions.OrderAPI.ListTodayOrders, false, false},
		{"GetTodayTotal", http.MethodGet, BasePath + "/orders/today/total", handleFunctions.OrderAPI.GetTodayTotal, false, false},
		{"GetOrderById", http.MethodGet, BasePath + "/orders/:orderId", handleFunctions.OrderAPI.GetOrderById, false, false},
		{"UpdateOrder", http.MethodPut, BasePath + "/orders/:orderId", handleFunctions.OrderAPI.UpdateOrder, false, false},
		{"DeleteOrder", http.MethodDelete, BasePath + "/orders/:orderId", handleFunctions.OrderAPI.DeleteOrder, false, false},

		{"NewCart", http.MethodPost, BasePath + "/carts", handleFunctions.CartAPI.NewCart, false, false},
		{"GetCart", http.MethodGet, BasePath + "/carts/:cartId", handleFunctions.CartAPI.GetCart, false, false},
		{"AddCartItem", http.MethodPost, BasePath + "/carts/:cartId/items", handleFunctions.CartAPI.AddItem, false, false},
		{"RemoveCartItem", http.MethodDelete, BasePath + "/carts/:cartId/items/:productId", handleFunctions.CartAPI.RemoveItem, false, false},
		{"ClearCart", http.MethodDelete, BasePath + "/carts/:cartId/items", handleFunctions.CartAPI.ClearCart, false, false},
		{"Checkout", http.MethodPost, BasePath + "/carts/:cartId/checkout", handleFunctions.CartAPI.Checkout, false, false},

		{"GetDashboard", http.MethodGet, BasePath + "/reports/dashboard", handleFunctions.ReportAPI.GetDashboard, false, false},
		{"GetSalesReport", http.MethodGet, BasePath + "/reports/sales", handleFunctions.ReportAPI.GetSalesReport, false, false},
		{"GetInventoryReport", http.MethodGet, BasePath + "/reports/inventory", handleFunctions.ReportAPI.GetInventoryReport, false, false},

		{"StreamClock", http.MethodGet, BasePath + "/pos/clock", handleFunctions.POSAPI.StreamClock, false, false},
	}
}
