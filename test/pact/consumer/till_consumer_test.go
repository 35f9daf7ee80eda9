//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/retail-pos/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
}

type productPayload struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Price      string `json:"price"`
	Quantity   int32  `json:"quantity"`
	StockLevel string `json:"stockLevel"`
}

type orderPayload struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customerName"`
	Total        string `json:"total"`
	Status       string `json:"status"`
	Lines        []struct {
		ProductID int64 `json:"productId"`
		Quantity  int32 `json:"quantity"`
	} `json:"lines"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	kind   string
	detail string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.kind, e.detail, e.status)
}

func TestTillContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	product := pacttest.ExistingProduct()
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.S("application/problem+json")
	auth := matchers.S(pacttest.BearerHeader())

	pact.AddInteraction().
		Given(pacttest.StateAdminExists).
		UponReceiving("a login with valid credentials").
		WithRequest("POST", "/api/v1/auth/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"username": matchers.S(pacttest.AdminUsername),
				"password": matchers.S(pacttest.AdminPassword),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"token":     matchers.Like(pacttest.SessionToken),
				"expiresAt": matchers.Like("2024-06-12T10:00:00Z"),
				"user": matchers.Map{
					"username": matchers.S(pacttest.AdminUsername),
					"role":     matchers.Term("ADMIN", "ADMIN|CASHIER"),
					"active":   matchers.Like(true),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateAdminExists).
		UponReceiving("a login with a wrong password").
		WithRequest("POST", "/api/v1/auth/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"username": matchers.S(pacttest.AdminUsername),
				"password": matchers.S("wrong"),
			})
		}).
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/invalid-credentials"),
				"status": matchers.Like(http.StatusUnauthorized),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to fetch an existing product").
		WithRequest("GET", fmt.Sprintf("/api/v1/products/%d", product.ID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", auth)
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":         matchers.Like(product.ID),
				"name":       matchers.Like(product.Name),
				"category":   matchers.Like(product.Category),
				"price":      matchers.Term(product.Price, `^\d+(\.\d{1,2})?$`),
				"quantity":   matchers.Like(product.Quantity),
				"stockLevel": matchers.Term("in", "in|low|out"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request for a missing product").
		WithRequest("GET", fmt.Sprintf("/api/v1/products/%d", pacttest.MissingProductID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", auth)
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCartReady).
		UponReceiving("a checkout of a filled cart").
		WithRequest("POST", fmt.Sprintf("/api/v1/carts/%s/checkout", pacttest.CartID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", auth)
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"customerName": matchers.S(pacttest.CustomerName)})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":           matchers.Like(1),
				"customerName": matchers.S(pacttest.CustomerName),
				"total":        matchers.Term("5", `^\d+(\.\d{1,2})?$`),
				"status":       matchers.S("completed"),
				"lines": matchers.EachLike(matchers.Map{
					"productId": matchers.Like(product.ID),
					"quantity":  matchers.Like(pacttest.CartQuantity),
				}, 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCartEmpty).
		UponReceiving("a checkout of an empty cart").
		WithRequest("POST", fmt.Sprintf("/api/v1/carts/%s/checkout", pacttest.CartID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", auth)
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"customerName": matchers.S(pacttest.CustomerName)})
		}).
		WillRespondWith(http.StatusUnprocessableEntity, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/empty-cart"),
				"status": matchers.Like(http.StatusUnprocessableEntity),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newTillClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		session, err := client.Login(ctx, pacttest.AdminUsername, pacttest.AdminPassword)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if session.Token == "" || session.User.Username != pacttest.AdminUsername {
			return fmt.Errorf("unexpected login response %+v", session)
		}
		if _, err := client.Login(ctx, pacttest.AdminUsername, "wrong"); !isStatus(err, http.StatusUnauthorized) {
			return fmt.Errorf("expected 401 for wrong password, got %v", err)
		}

		client.token = pacttest.SessionToken
		fetched, err := client.GetProduct(ctx, product.ID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if fetched.ID != product.ID {
			return fmt.Errorf("expected product id %d, got %+v", product.ID, fetched)
		}
		if _, err := client.GetProduct(ctx, pacttest.MissingProductID); !isStatus(err, http.StatusNotFound) {
			return fmt.Errorf("expected 404 for product %d, got %v", pacttest.MissingProductID, err)
		}

		order, err := client.Checkout(ctx, pacttest.CartID, pacttest.CustomerName)
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		if order.ID == 0 || len(order.Lines) == 0 {
			return fmt.Errorf("unexpected order %+v", order)
		}
		if _, err := client.Checkout(ctx, pacttest.CartID, pacttest.CustomerName); !isStatus(err, http.StatusUnprocessableEntity) {
			return fmt.Errorf("expected 422 for empty cart, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

type tillClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newTillClient(config pactconsumer.MockServerConfig) *tillClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &tillClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *tillClient) Login(ctx context.Context, username, password string) (*loginResponse, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tillClient) GetProduct(ctx context.Context, id int64) (*productPayload, error) {
	var out productPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tillClient) Checkout(ctx context.Context, cartID, customer string) (*orderPayload, error) {
	var out orderPayload
	if err := c.do(ctx, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", map[string]string{"customerName": customer}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tillClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, kind: problem.Type, detail: problem.Detail}
}

func isStatus(err error, status int) bool {
	apiErr, ok := err.(apiError)
	return ok && apiErr.status == status
}
