package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// ErrIntentNotFound indicates the gateway doesn't know the intent.
var ErrIntentNotFound = errors.New("payment intent not found")

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations against the card payment gateway.
type Client interface {
	CreateIntent(ctx context.Context, amount float64, reference string) (*model.PaymentIntent, error)
	GetIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error)
	VerifySignature(body []byte, signature string) bool
}

// HTTPClient implements Client via the gateway HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	secret     []byte
	httpClient *http.Client
	logger     *slog.Logger
}

// intentPayload mirrors the gateway's intent JSON.
type intentPayload struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"client_secret,omitempty"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
}

type createIntentRequest struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Reference string  `json:"reference"`
}

// NewHTTPClient creates a gateway client with default timeout.
func NewHTTPClient(baseURL, secret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		secret:  []byte(secret),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateIntent registers a payment intent for the given amount.
func (c *HTTPClient) CreateIntent(ctx context.Context, amount float64, reference string) (*model.PaymentIntent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/intents")

	body, err := json.Marshal(createIntentRequest{Amount: amount, Currency: "usd", Reference: reference})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.doIntent(req)
}

// GetIntent queries the gateway for current intent status.
func (c *HTTPClient) GetIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/intents/", intentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	return c.doIntent(req)
}

func (c *HTTPClient) doIntent(req *http.Request) (*model.PaymentIntent, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data intentPayload
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &model.PaymentIntent{
			ID:           data.ID,
			ClientSecret: data.ClientSecret,
			Status:       model.IntentStatus(data.Status),
			Amount:       data.Amount,
		}, nil
	case http.StatusNotFound:
		return nil, ErrIntentNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}
}

// VerifySignature checks a webhook body against its hex HMAC-SHA256 signature.
func (c *HTTPClient) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
