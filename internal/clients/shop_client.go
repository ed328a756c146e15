package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

const maxErrorBody = 64 << 10

type productsResponse struct {
	Products []domain.Product `json:"products"`
}

// ShopClient talks to the remote shop API.
type ShopClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	CreateOrder(ctx context.Context, payload domain.OrderPayload) error
}

// RetryPolicy controls retries of idempotent GET requests. POST is never retried.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
}

type shopHTTPClient struct {
	baseURL string
	client  *http.Client
	retry   RetryPolicy
	log     *logrus.Logger
}

func NewShopHTTPClient(baseURL string, timeout time.Duration, retry RetryPolicy, logger *logrus.Logger) ShopClient {
	if retry.InitialInterval <= 0 {
		retry.InitialInterval = backoff.DefaultInitialInterval
	}
	return &shopHTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		retry: retry,
		log:   logger,
	}
}

func (c *shopHTTPClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var response productsResponse
	if err := c.getJSON(ctx, "/products", &response); err != nil {
		return nil, err
	}
	if response.Products == nil {
		c.log.Warn("ShopClient: products response has no 'products' field")
		return nil, &domain.MissingDataError{Resource: "products"}
	}
	c.log.Infof("ShopClient: Loaded %d products", len(response.Products))
	return response.Products, nil
}

// ListOrders decodes the bare array the orders endpoint returns.
func (c *shopHTTPClient) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.getJSON(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		c.log.Warn("ShopClient: orders response is empty")
		return nil, &domain.MissingDataError{Resource: "orders"}
	}
	c.log.Infof("ShopClient: Loaded %d orders", len(orders))
	return orders, nil
}

func (c *shopHTTPClient) CreateOrder(ctx context.Context, payload domain.OrderPayload) error {
	const op = "POST /orders"
	url := c.baseURL + "/orders"

	jsonData, err := json.Marshal(payload)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to marshal order payload: %v", err)
		return fmt.Errorf("failed to prepare order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		c.log.Errorf("ShopClient: Failed to create CreateOrder request: %v", err)
		return fmt.Errorf("failed to create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Infof("ShopClient: Posting order with %d items for customer '%s'", len(payload.Order.OrderItems), payload.Order.CustomerName)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("ShopClient: Failed to execute CreateOrder request: %v", err)
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := errorDetail(bodyBytes)
		c.log.Errorf("ShopClient: CreateOrder failed with status %d. Response body: %s", resp.StatusCode, string(bodyBytes))
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Detail: detail}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	c.log.Infof("ShopClient: Order created (status %d)", resp.StatusCode)
	return nil
}

// getJSON fetches path and decodes the body into out, retrying transport
// failures and 5xx answers with exponential backoff.
func (c *shopHTTPClient) getJSON(ctx context.Context, path string, out any) error {
	op := "GET " + path
	url := c.baseURL + path
	attempt := 0

	operation := func() error {
		attempt++
		c.log.Debugf("ShopClient: %s attempt %d", op, attempt)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			c.log.Errorf("ShopClient: Failed to create request for %s: %v", url, err)
			return backoff.Permanent(fmt.Errorf("failed to create request for %s: %w", path, err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			c.log.Warnf("ShopClient: %s failed on attempt %d: %v", op, attempt, err)
			return &domain.TransportError{Op: op, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			terr := &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Detail: errorDetail(bodyBytes)}
			if resp.StatusCode < 500 {
				c.log.Errorf("ShopClient: %s returned status %d", op, resp.StatusCode)
				return backoff.Permanent(terr)
			}
			c.log.Warnf("ShopClient: %s returned status %d on attempt %d", op, resp.StatusCode, attempt)
			return terr
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Errorf("ShopClient: Failed to decode %s response: %v", op, err)
			return backoff.Permanent(fmt.Errorf("failed to decode %s response: %w", path, err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retry.InitialInterval
	b := backoff.WithContext(backoff.WithMaxRetries(policy, c.retry.MaxRetries), ctx)

	if err := backoff.Retry(operation, b); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !domain.IsTransportError(err) {
			return &domain.TransportError{Op: op, Err: ctxErr}
		}
		return err
	}
	return nil
}

// errorDetail pulls a human readable message out of an error response body.
// It understands {"error": ...}, {"message": ...} and {"errors": ...} where the
// value is a string, a list of strings or a map of field to messages.
func errorDetail(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		text := string(body)
		if len(text) > 200 || strings.HasPrefix(text, "<") {
			return ""
		}
		return text
	}

	for _, key := range []string{"error", "message", "errors", "Message"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if msg := flattenMessage(raw); msg != "" {
			return msg
		}
	}
	return ""
}

func flattenMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}

	var fields map[string][]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		parts := make([]string, 0, len(fields))
		for _, key := range sortedKeys(fields) {
			parts = append(parts, key+" "+strings.Join(fields[key], ", "))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
