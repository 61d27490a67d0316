package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the subscription API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new subscription API client.
//
// baseURL is the API base URL (e.g., "https://api.example.com").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe opens a subscription to the given plan for the user.
func (c *Client) Subscribe(ctx context.Context, userID, planID uint) (*Subscription, error) {
	url := fmt.Sprintf("%s/users/%d/subscription", c.baseURL, userID)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodPost, url, map[string]any{"plan_id": planID}, &sub); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return &sub, nil
}

// GetSubscription retrieves the user's active subscription.
func (c *Client) GetSubscription(ctx context.Context, userID uint) (*Subscription, error) {
	url := fmt.Sprintf("%s/users/%d/subscription", c.baseURL, userID)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &sub); err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &sub, nil
}

// ChangePlan switches the user's active subscription to another plan.
func (c *Client) ChangePlan(ctx context.Context, userID, planID uint) (*Subscription, error) {
	url := fmt.Sprintf("%s/users/%d/subscription", c.baseURL, userID)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodPut, url, map[string]any{"plan_id": planID}, &sub); err != nil {
		return nil, fmt.Errorf("change plan: %w", err)
	}
	return &sub, nil
}

// Cancel terminates the user's active subscription.
func (c *Client) Cancel(ctx context.Context, userID uint) error {
	url := fmt.Sprintf("%s/users/%d/subscription", c.baseURL, userID)

	if err := c.doRequest(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	return nil
}

// ListPlans retrieves the plan catalog.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	url := fmt.Sprintf("%s/plans", c.baseURL)

	var plans []Plan
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &plans); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// doRequest performs an HTTP request and decodes the response envelope.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if !apiResp.Success {
		if apiResp.Error != nil {
			return fmt.Errorf("api error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
		}
		return fmt.Errorf("api error: status=%d", resp.StatusCode)
	}

	if result == nil || apiResp.Data == nil {
		return nil
	}

	// Re-marshal and unmarshal to convert Data to the target type
	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
