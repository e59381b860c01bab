// Package storeapi is an HTTP client for the store's own public API. The
// assistant consumes the catalog and cart operations exclusively through it,
// so every request goes through the same validation the HTTP surface applies.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "github.com/shopassist/shopassist/internal/errors"
	"github.com/shopassist/shopassist/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) ListProducts(ctx context.Context, query string) ([]*models.Product, error) {

	endpoint := c.baseURL + "/api/v1/products"
	if query != "" {
		endpoint += "?q=" + url.QueryEscape(query)
	}

	var products []*models.Product
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	var product models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/api/v1/products/%d", c.baseURL, id), nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) CreateCart(ctx context.Context, items []models.CartItemRequest) (*models.Cart, error) {

	var cart models.Cart
	payload := models.CreateCartRequest{Items: items}

	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/carts", payload, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) GetCart(ctx context.Context, id int64) (*models.Cart, error) {

	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/api/v1/carts/%d", c.baseURL, id), nil, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) UpdateCart(ctx context.Context, id int64, items []models.CartItemRequest) (*models.Cart, error) {

	var cart models.Cart
	payload := models.UpdateCartRequest{Items: items}

	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/api/v1/carts/%d", c.baseURL, id), payload, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

// do performs one request and unmarshals the response envelope. API-level
// failures come back as AppErrors carrying the server's error code, so
// callers can tell "not found" from "not enough stock"; transport failures
// are returned raw for the caller's fallback policy.
func (c *Client) do(ctx context.Context, method, endpoint string, payload, dest any) error {

	var body io.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("store api request failed: %w", err)
	}

	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode store api response: %w", err)
	}

	if !env.Success {

		if env.Error == nil {
			return appErrors.ThirdPartyError("Store API returned an unspecified error")
		}

		return appErrors.NewAppError(env.Error.Code, env.Error.Message, resp.StatusCode)
	}

	if dest != nil {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("failed to decode store api payload: %w", err)
		}
	}

	return nil
}
