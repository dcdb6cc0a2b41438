package ibex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) (*httptest.Server, *int) {
	refreshCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-access-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-me", body["refreshToken"])
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "access-granted"})
	})
	mux.HandleFunc("/invoice/rest/webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "access-granted" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bpt-1", body["bptId"])
		assert.Equal(t, float64(21000), body["amountMsat"])
		assert.NotEmpty(t, body["webhookSecret"])
		json.NewEncoder(w).Encode(Invoice{
			Hash:          "deadbeef",
			Bolt11:        "lnbc210n1...",
			ExpirationUtc: 1700000000,
		})
	})
	return httptest.NewServer(mux), &refreshCalls
}

func testClient(serverURL string) *Client {
	return NewClient(&Config{
		ApiUrl:       serverURL,
		RefreshToken: "refresh-me",
		BptId:        "bpt-1",
		WebhookUrl:   "https://lndb.example.com/webhook",
	})
}

func TestCreateInvoiceWithWebhook(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	client := testClient(server.URL)
	invoice, err := client.CreateInvoiceWithWebhook(context.Background(), 21000, "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, "deadbeef", invoice.Hash)
	assert.Equal(t, "lnbc210n1...", invoice.Bolt11)
	assert.Equal(t, int64(1700000000), invoice.ExpirationUtc)
}

func TestAccessTokenIsCached(t *testing.T) {
	server, refreshCalls := newTestServer(t)
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.CreateInvoiceWithWebhook(context.Background(), 21000, "one")
	assert.NoError(t, err)
	_, err = client.CreateInvoiceWithWebhook(context.Background(), 21000, "two")
	assert.NoError(t, err)
	assert.Equal(t, 1, *refreshCalls)
}

func TestExpiryNormalizesMilliseconds(t *testing.T) {
	seconds := &Invoice{ExpirationUtc: 1700000000}
	millis := &Invoice{ExpirationUtc: 1700000000000}

	assert.Equal(t, time.Unix(1700000000, 0), seconds.Expiry())
	assert.Equal(t, seconds.Expiry(), millis.Expiry())
}

func TestProviderErrorPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-access-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "access-granted"})
	})
	mux.HandleFunc("/invoice/rest/webhook", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no liquidity", http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.CreateInvoiceWithWebhook(context.Background(), 21000, "s3cret")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
