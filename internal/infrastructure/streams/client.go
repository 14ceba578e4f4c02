package streams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iotaledger/e-commerce-tools/config"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/deps"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
)

// Client talks to the streams gateway, the sidecar that holds the
// actual ledger connection. Minted subscriptions cannot be revoked
// through the gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

type requestSubscriptionBody struct {
	ChannelAddress string `json:"channelAddress"`
	Seed           string `json:"seed,omitempty"`
	PresharedKey   string `json:"presharedKey,omitempty"`
}

type requestSubscriptionResponse struct {
	Handle           string `json:"handle"`
	SubscriptionLink string `json:"subscriptionLink"`
	PublicKey        string `json:"publicKey,omitempty"`
	PskID            string `json:"pskId,omitempty"`
	Seed             string `json:"seed,omitempty"`
}

type exportStateBody struct {
	Handle string `json:"handle"`
}

type exportStateResponse struct {
	State string `json:"state"`
}

// NewClient creates a new streams gateway client
func NewClient(cfg *config.StreamsConfig, logger zerolog.Logger, m *metrics.Metrics) deps.StreamsClient {
	client := &Client{
		baseURL: cfg.GatewayURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:  logger,
		metrics: m,
	}

	logger.Info().
		Str("gateway_url", cfg.GatewayURL).
		Msg("Streams gateway client initialized")

	return client
}

// RequestSubscription mints a subscription on the channel. The gateway
// generates a seed when none is given and omits the public key on the
// preshared-key path.
func (c *Client) RequestSubscription(ctx context.Context, channelAddress, seed, presharedKey string) (*deps.SubscriptionHandle, error) {
	var result requestSubscriptionResponse
	err := c.post(ctx, "/api/subscriptions/request", requestSubscriptionBody{
		ChannelAddress: channelAddress,
		Seed:           seed,
		PresharedKey:   presharedKey,
	}, &result)
	if err != nil {
		return nil, err
	}

	return &deps.SubscriptionHandle{
		ID:               result.Handle,
		SubscriptionLink: result.SubscriptionLink,
		PublicKey:        result.PublicKey,
		PskID:            result.PskID,
		Seed:             result.Seed,
	}, nil
}

// ExportState exports the opaque state of a subscription handle
func (c *Client) ExportState(ctx context.Context, handle *deps.SubscriptionHandle) (string, error) {
	var result exportStateResponse
	if err := c.post(ctx, "/api/subscriptions/export", exportStateBody{Handle: handle.ID}, &result); err != nil {
		return "", err
	}

	return result.State, nil
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.StreamsRequestErrors.Inc()
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.StreamsRequestDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.metrics.StreamsRequestErrors.Inc()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn().
			Int("status_code", resp.StatusCode).
			Str("path", path).
			Bytes("body", msg).
			Msg("Unexpected status code from streams gateway")
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.metrics.StreamsRequestErrors.Inc()
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return nil
}
