package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopfront/internal/domain"
)

// Client talks to the hosted payment gateway. The secret key is a server-side
// bearer credential and must never reach the browsing client; every gateway
// call goes through this process.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient builds a gateway client. Gateway calls carry a hard timeout so a
// stalled upstream surfaces as a normal verification failure.
func NewClient(baseURL, secretKey string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GenerateReference produces a transaction reference unique with
// overwhelming probability. Callers generate and retain it before calling
// Initialize so a later Verify can be matched even if the initialize
// response is lost.
func GenerateReference() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("PSK-%d-%s", time.Now().UnixMilli(), suffix)
}

// InitializeInput is everything the gateway needs to open a transaction.
// Amount is in the currency's minor unit; conversion from major units lives
// in domain.MinorUnits and happens at the boundary that ingests decimals.
type InitializeInput struct {
	Email       string
	AmountCents int64
	Reference   string
	CallbackURL string
	Currency    string
	Channels    []string
	Metadata    domain.TransactionMetadata
}

// Initialization is the gateway's answer to a transaction initialize.
type Initialization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type initializeRequest struct {
	Email       string                     `json:"email"`
	Amount      int64                      `json:"amount"`
	Reference   string                     `json:"reference"`
	CallbackURL string                     `json:"callback_url"`
	Currency    string                     `json:"currency,omitempty"`
	Channels    []string                   `json:"channels,omitempty"`
	Metadata    domain.TransactionMetadata `json:"metadata"`
}

type gatewayEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Channel   string `json:"channel"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
	Metadata domain.TransactionMetadata `json:"metadata"`
	PaidAt   string                     `json:"paid_at"`
}

// Initialize opens a transaction with the gateway and returns the hosted
// payment page details.
func (c *Client) Initialize(ctx context.Context, in InitializeInput) (*Initialization, error) {
	body, err := json.Marshal(initializeRequest{
		Email:       in.Email,
		Amount:      in.AmountCents,
		Reference:   in.Reference,
		CallbackURL: in.CallbackURL,
		Currency:    in.Currency,
		Channels:    in.Channels,
		Metadata:    in.Metadata,
	})
	if err != nil {
		return nil, err
	}

	env, statusCode, err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, &InitError{Reference: in.Reference, Message: "gateway unreachable", cause: err}
	}
	if statusCode < 200 || statusCode >= 300 || !env.Status {
		c.logger.Printf("payment: initialize rejected reference=%s status=%d message=%q", in.Reference, statusCode, env.Message)
		return nil, &InitError{Reference: in.Reference, StatusCode: statusCode, Message: env.Message}
	}

	var data initializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &InitError{Reference: in.Reference, StatusCode: statusCode, Message: "malformed gateway response", cause: err}
	}
	return &Initialization{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify queries the gateway for a transaction by reference. The gateway
// endpoint is designed to be re-queried, so Verify is safe to call any
// number of times for the same reference.
func (c *Client) Verify(ctx context.Context, reference string) (*domain.Transaction, error) {
	env, statusCode, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, &VerifyError{Reference: reference, Message: "gateway unreachable", cause: err}
	}
	if statusCode < 200 || statusCode >= 300 || !env.Status {
		c.logger.Printf("payment: verify rejected reference=%s status=%d message=%q", reference, statusCode, env.Message)
		return nil, &VerifyError{Reference: reference, StatusCode: statusCode, Message: env.Message}
	}

	var data verifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &VerifyError{Reference: reference, StatusCode: statusCode, Message: "malformed gateway response", cause: err}
	}

	tx := &domain.Transaction{
		Reference:     data.Reference,
		Status:        data.Status,
		AmountCents:   data.Amount,
		Currency:      data.Currency,
		Channel:       data.Channel,
		CustomerEmail: data.Customer.Email,
		Metadata:      data.Metadata,
	}
	if data.PaidAt != "" {
		if paidAt, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			tx.PaidAt = &paidAt
		}
	}
	return tx, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*gatewayEnvelope, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, err
	}

	var env gatewayEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Keep the HTTP status so callers can classify; message stays generic.
		env = gatewayEnvelope{Status: false, Message: "unparseable gateway response"}
	}
	return &env, resp.StatusCode, nil
}
