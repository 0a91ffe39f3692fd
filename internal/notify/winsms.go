package notify

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

	"github.com/01moynul/bales-storefront/internal/apperr"
)

// WinSMSSender delivers SMS through the WinSMS REST API.
type WinSMSSender struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewWinSMSSender returns nil when apiKey is empty.
func NewWinSMSSender(apiKey, baseURL string) *WinSMSSender {
	if apiKey == "" {
		return nil
	}
	return &WinSMSSender{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type winsmsRecipient struct {
	MobileNumber string `json:"mobileNumber"`
	Accepted     *bool  `json:"accepted,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type winsmsRequest struct {
	Message    string            `json:"message"`
	Recipients []winsmsRecipient `json:"recipients"`
}

type winsmsResponse struct {
	Recipients   []winsmsRecipient `json:"recipients"`
	ErrorMessage string            `json:"errorMessage"`
}

func (s *WinSMSSender) SendSMS(ctx context.Context, to, body string) error {
	// 1. Build the request
	payload, err := json.Marshal(winsmsRequest{
		Message:    body,
		Recipients: []winsmsRecipient{{MobileNumber: to}},
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sms/outgoing/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("AUTHORIZATION", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// 2. Send it
	resp, err := s.http.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindDelivery, "Failed to send SMS", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		log.Printf("WARNING: winsms: reading response (status %d): %v", resp.StatusCode, err)
	}

	// 3. Interpret the provider's answer
	var out winsmsResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			log.Printf("WARNING: winsms: undecodable response (status %d): %v: %.200s", resp.StatusCode, err, raw)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.ErrorMessage
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return apperr.Wrap(apperr.KindDelivery, "Failed to send SMS: "+msg,
			fmt.Errorf("winsms status %d: %s", resp.StatusCode, raw))
	}
	for _, r := range out.Recipients {
		if r.Accepted != nil && !*r.Accepted {
			msg := r.ErrorMessage
			if msg == "" {
				msg = "recipient not accepted"
			}
			return apperr.New(apperr.KindDelivery, "Failed to send SMS: "+msg)
		}
	}
	return nil
}
