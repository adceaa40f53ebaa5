package delivery

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sms-scheduler/domain"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	HeaderMessageID = "X-Scheduler-Message-ID"
	HeaderSignature = "X-Scheduler-Signature"

	defaultGatewayTimeout = 30 * time.Second
)

// LogTransmitter only logs deliveries. It is the dry-run driver.
type LogTransmitter struct {
	log *slog.Logger
}

func NewLogTransmitter(log *slog.Logger) *LogTransmitter {
	return &LogTransmitter{log: log}
}

func (t *LogTransmitter) Transmit(_ context.Context, d Delivery) error {
	t.log.Info("Delivering message",
		"id", d.ID,
		"recipient", d.Recipient,
		"body", domain.Preview(d.Body, domain.PreviewLength),
	)
	return nil
}

type GatewayConfig struct {
	URL           string
	Secret        string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// HTTPGateway posts each delivery as JSON to an SMS gateway.
// The body is signed with HMAC-SHA256 and any non-2xx answer counts as a failed delivery.
type HTTPGateway struct {
	client  *http.Client
	config  GatewayConfig
	limiter *rate.Limiter
}

type gatewayPayload struct {
	ID          string `json:"id"`
	To          string `json:"to"`
	Body        string `json:"body"`
	ScheduledAt string `json:"scheduledAt"`
}

func NewHTTPGateway(config GatewayConfig) *HTTPGateway {
	if config.Timeout <= 0 {
		config.Timeout = defaultGatewayTimeout
	}
	limit := rate.Inf
	if config.RatePerSecond > 0 {
		limit = rate.Limit(config.RatePerSecond)
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}
	return &HTTPGateway{
		client:  &http.Client{},
		config:  config,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (g *HTTPGateway) Transmit(ctx context.Context, d Delivery) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	body, err := json.Marshal(gatewayPayload{
		ID:          d.ID,
		To:          d.Recipient,
		Body:        d.Body,
		ScheduledAt: d.ScheduledAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxTimeout, http.MethodPost, g.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderMessageID, d.ID)
	req.Header.Set(HeaderSignature, ComputeSignature(g.config.Secret, body))

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway answered %d", resp.StatusCode)
	}
	return nil
}

func ComputeSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature lets a gateway check that a request came from this scheduler.
func VerifySignature(secret string, body []byte, signature string) bool {
	expected := ComputeSignature(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
