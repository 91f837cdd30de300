// Package payment wraps the external card gateway. The rest of the system
// only ever sees a yes/no authorization outcome; tokenization and PCI
// concerns stay on the gateway side of the wire.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Instrument selects how a charge is funded: a previously saved card by id,
// or raw card details to be tokenized by the gateway. Exactly one of the two
// should be populated.
type Instrument struct {
	SavedCardID string `json:"savedCardId,omitempty"`
	CardNumber  string `json:"cardNumber,omitempty"`
	ExpMonth    int    `json:"expMonth,omitempty"`
	ExpYear     int    `json:"expYear,omitempty"`
	CVC         string `json:"cvc,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Authorizer authorizes a charge for the given amount. A nil error means the
// payment went through; any error means nothing was charged.
type Authorizer interface {
	Authorize(ctx context.Context, instrument Instrument, amount decimal.Decimal) error
}

// GatewayConfig holds settings for the HTTP gateway client.
type GatewayConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// gateway implements Authorizer against an HTTP card gateway.
type gateway struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   zerolog.Logger
}

// NewGateway creates an HTTP-backed authorizer.
func NewGateway(cfg GatewayConfig, logger zerolog.Logger) Authorizer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &gateway{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "payment-gateway").Logger(),
	}
}

type authorizeRequest struct {
	Instrument Instrument `json:"instrument"`
	Amount     string     `json:"amount"`
	Currency   string     `json:"currency"`
}

type authorizeResponse struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}

// Authorize posts the charge to the gateway and interprets the outcome.
func (g *gateway) Authorize(ctx context.Context, instrument Instrument, amount decimal.Decimal) error {
	payload, err := json.Marshal(authorizeRequest{
		Instrument: instrument,
		Amount:     amount.StringFixed(2),
		Currency:   "USD",
	})
	if err != nil {
		return fmt.Errorf("failed to encode authorize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build authorize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Str("amount", amount.StringFixed(2)).Msg("gateway request failed")
		return fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Warn().
			Int("status", resp.StatusCode).
			Str("amount", amount.StringFixed(2)).
			Msg("gateway rejected authorize request")
		return fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var result authorizeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if !result.Approved {
		g.logger.Warn().
			Str("reason", result.Reason).
			Str("amount", amount.StringFixed(2)).
			Msg("payment declined")
		return fmt.Errorf("payment declined: %s", result.Reason)
	}

	g.logger.Debug().Str("amount", amount.StringFixed(2)).Msg("payment authorized")
	return nil
}
