// Package client provides a typed HTTP client for the SneakerHub API and a
// polling watcher for order status updates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Address mirrors the API's shipping address payload.
type Address struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Item mirrors the API's order line item payload.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Size      int32   `json:"size"`
	Price     float64 `json:"price"`
	Quantity  int32   `json:"quantity"`
}

// Order mirrors the API's order aggregate payload.
type Order struct {
	OrderID           string  `json:"orderId"`
	Status            string  `json:"status"`
	TotalAmount       float64 `json:"totalAmount"`
	OrderDate         string  `json:"orderDate"`
	StatusUpdatedAt   string  `json:"statusUpdatedAt"`
	EstimatedDelivery string  `json:"estimatedDelivery"`
	TrackingNumber    *string `json:"trackingNumber"`
	ShippingAddress   Address `json:"shippingAddress"`
	Items             []Item  `json:"items"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the SneakerHub REST API. It is safe for concurrent use
// once the token is set.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// Login authenticates and stores the returned bearer token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// ActiveOrders fetches the caller's non-cancelled orders.
func (c *Client) ActiveOrders(ctx context.Context) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// OrderHistory fetches the caller's complete order history.
func (c *Client) OrderHistory(ctx context.Context) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// Order fetches one order by its identifier.
func (c *Client) Order(ctx context.Context, orderID string) (*Order, error) {
	var out struct {
		Order Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+orderID, nil, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// CancelOrder cancels a Processing order owned by the caller.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/api/orders/"+orderID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
