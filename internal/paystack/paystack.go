// Package paystack is a small client for the Paystack transaction API.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/shopspring/decimal"
)

// StatusSuccess is the transaction status Paystack reports for captured funds.
const StatusSuccess = "success"

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts rand to cents, rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts cents back to rand.
func FromMinorUnits(amount int64) float64 {
	return decimal.New(amount, -2).InexactFloat64()
}

type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

func NewClient(secretKey, baseURL string) *Client {
	return &Client{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// InitializeRequest starts a transaction. Amount is in minor units.
type InitializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Transaction is the subset of a verified transaction this service reads.
type Transaction struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
}

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Initialize creates a hosted checkout for req.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*Authorization, error) {
	var out envelope[Authorization]
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Verify fetches the outcome of the transaction with the given reference.
func (c *Client) Verify(ctx context.Context, reference string) (*Transaction, error) {
	var out envelope[Transaction]
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// do sends one request. A transport failure is internal; status=false from
// Paystack is UpstreamRejected carrying Paystack's message.
func (c *Client) do(ctx context.Context, method, path string, body any, out interface {
	rejected() (bool, string)
}) error {
	if c.secretKey == "" {
		return apperr.Configuration("PAYSTACK_SECRET_KEY is not set")
	}

	// 1. Build the request
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// 2. Call Paystack
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("paystack %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	// 3. Decode the envelope
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading paystack response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding paystack response (status %d): %w", resp.StatusCode, err)
	}
	if rejected, msg := out.rejected(); rejected {
		if msg == "" {
			msg = "Payment processor rejected the request"
		}
		return apperr.Wrap(apperr.KindUpstreamRejected, msg, fmt.Errorf("paystack status %d", resp.StatusCode))
	}
	return nil
}

func (e *envelope[T]) rejected() (bool, string) { return !e.Status, e.Message }
