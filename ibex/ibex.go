package ibex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Invoice is the provider's response for a freshly issued invoice.
type Invoice struct {
	Hash          string `json:"hash"`
	Bolt11        string `json:"bolt11"`
	ExpirationUtc int64  `json:"expirationUtc"`
}

// Expiry converts expirationUtc to a time. The field is epoch seconds, but a
// value that can only be epoch milliseconds is scaled down rather than read as
// a date thousands of years out.
func (i *Invoice) Expiry() time.Time {
	v := i.ExpirationUtc
	if v > 1e11 {
		v /= 1000
	}
	return time.Unix(v, 0)
}

type InvoiceClient interface {
	CreateInvoiceWithWebhook(ctx context.Context, amountMsat int64, secret string) (*Invoice, error)
}

type Client struct {
	cfg        *Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) url(path string) string {
	return strings.TrimSuffix(c.cfg.ApiUrl, "/") + "/" + path
}

// getAccessToken exchanges the refresh token for an access token and caches
// it until invalidated by a 401.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" {
		return c.accessToken, nil
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": c.cfg.RefreshToken})
	if err != nil {
		return "", err
	}

	var token string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("auth/refresh-access-token"), bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var body struct {
			AccessToken string `json:"accessToken"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return fmt.Errorf("decoding refresh response: %w", err)
		}
		if body.AccessToken == "" {
			return fmt.Errorf("refresh returned no access token, status %d", resp.StatusCode)
		}
		token = body.AccessToken
		return nil
	}
	err = backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx))
	if err != nil {
		return "", err
	}

	c.accessToken = token
	return token, nil
}

func (c *Client) invalidateAccessToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
}

func (c *Client) request(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// a cached access token may have expired in the meantime, retry once
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.getAccessToken(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, method, c.url(path), bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateAccessToken()
			continue
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("ibex api error, status %d: %s", resp.StatusCode, raw)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding ibex response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("ibex api rejected the access token")
}

// CreateInvoiceWithWebhook issues an invoice that notifies our webhook with
// the given secret on settlement.
func (c *Client) CreateInvoiceWithWebhook(ctx context.Context, amountMsat int64, secret string) (*Invoice, error) {
	invoice := &Invoice{}
	err := c.request(ctx, http.MethodPost, "invoice/rest/webhook", map[string]interface{}{
		"bptId":         c.cfg.BptId,
		"amountMsat":    amountMsat,
		"webhookUrl":    c.cfg.WebhookUrl,
		"webhookSecret": secret,
	}, invoice)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}
