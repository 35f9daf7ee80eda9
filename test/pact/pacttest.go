//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "retail-pos-api"
	ConsumerName = "till-ui"

	StateAdminExists    = "admin account exists"
	StateProductExists  = "signed in and product with id 101 exists"
	StateProductMissing = "signed in and no product with id 404"
	StateCartReady      = "signed in and cart pact-cart holds two units of product 101"
	StateCartEmpty      = "signed in and cart pact-cart is empty"
)

const (
	AdminUsername = "admin"
	AdminPassword = "pact-pass"
	SessionToken  = "pact-session-token"
	CartID        = "pact-cart"

	ExistingProductID int64 = 101
	MissingProductID  int64 = 404
	CartQuantity      int32 = 2
	CustomerName            = "Pact Customer"
)

const (
	exampleProductName = "Pact Espresso"
	exampleCategory    = "Coffee"
	examplePrice       = "2.50"
	exampleStock       = 40
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the till consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProduct is the catalogue entry both sides agree on.
type ExampleProduct struct {
	ID       int64
	Name     string
	Category string
	Price    string
	Quantity int32
}

func ExistingProduct() ExampleProduct {
	return ExampleProduct{
		ID:       ExistingProductID,
		Name:     exampleProductName,
		Category: exampleCategory,
		Price:    examplePrice,
		Quantity: exampleStock,
	}
}

// BearerHeader is the Authorization value for the seeded session.
func BearerHeader() string {
	return "Bearer " + SessionToken
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
