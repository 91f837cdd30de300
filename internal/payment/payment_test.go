package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_Authorize_Approved(t *testing.T) {
	var got authorizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer pk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(authorizeResponse{Approved: true})
	}))
	defer server.Close()

	g := NewGateway(GatewayConfig{
		Endpoint: server.URL,
		APIKey:   "pk-test",
		Timeout:  5 * time.Second,
	}, zerolog.Nop())

	err := g.Authorize(context.Background(), Instrument{SavedCardID: "card_123"},
		decimal.RequireFromString("160.00"))

	require.NoError(t, err)
	assert.Equal(t, "160.00", got.Amount)
	assert.Equal(t, "card_123", got.Instrument.SavedCardID)
}

func TestGateway_Authorize_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authorizeResponse{Approved: false, Reason: "insufficient funds"})
	}))
	defer server.Close()

	g := NewGateway(GatewayConfig{Endpoint: server.URL}, zerolog.Nop())

	err := g.Authorize(context.Background(), Instrument{SavedCardID: "card_123"},
		decimal.RequireFromString("160.00"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestGateway_Authorize_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	g := NewGateway(GatewayConfig{Endpoint: server.URL}, zerolog.Nop())

	err := g.Authorize(context.Background(), Instrument{SavedCardID: "card_123"},
		decimal.RequireFromString("10.00"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestGateway_Authorize_Unreachable(t *testing.T) {
	g := NewGateway(GatewayConfig{Endpoint: "http://127.0.0.1:1/authorize"}, zerolog.Nop())

	err := g.Authorize(context.Background(), Instrument{SavedCardID: "card_123"},
		decimal.RequireFromString("10.00"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
