package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/market_admin_server/config"
)

func TestCreateCheckoutSession(t *testing.T) {
	var gotAuth string
	var gotReq CheckoutRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(CheckoutSession{
			SessionID:   "cs_test_123",
			CheckoutURL: "https://pay.example.com/cs_test_123",
		})
	}))
	defer server.Close()

	client := NewClient(&config.PaymentConfig{
		FunctionURL: server.URL,
		BearerToken: "secret-token",
		SuccessURL:  "https://admin.example.com/success",
		CancelURL:   "https://admin.example.com/cancel",
	})

	session, err := client.CreateCheckoutSession(context.Background(), &CheckoutRequest{
		PackageID:   "starter",
		PackageType: "personal",
		Amount:      10.00,
		Credits:     50,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "starter", gotReq.PackageID)
	assert.Equal(t, "https://admin.example.com/success", gotReq.SuccessURL)
	assert.Equal(t, "cs_test_123", session.SessionID)
	assert.Equal(t, "https://pay.example.com/cs_test_123", session.CheckoutURL)
}

func TestCreateCheckoutSession_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(&config.PaymentConfig{FunctionURL: server.URL})

	_, err := client.CreateCheckoutSession(context.Background(), &CheckoutRequest{PackageID: "starter"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCreateCheckoutSession_NotConfigured(t *testing.T) {
	client := NewClient(&config.PaymentConfig{})

	_, err := client.CreateCheckoutSession(context.Background(), &CheckoutRequest{PackageID: "starter"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
