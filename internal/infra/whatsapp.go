package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"auromart/internal/config"
)

// ErrWhatsappDisabled is returned by Send when no gateway credentials are set.
var ErrWhatsappDisabled = errors.New("whatsapp: gateway not configured")

// WhatsappClient posts messages to a Twilio-compatible Messages API using the
// whatsapp: address scheme.
type WhatsappClient struct {
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
}

func NewWhatsappClient(cfg *config.Config) *WhatsappClient {
	return &WhatsappClient{
		baseURL:    strings.TrimRight(cfg.WhatsappAPIURL, "/"),
		accountSID: cfg.WhatsappAccountSID,
		authToken:  cfg.WhatsappAuthToken,
		fromNumber: cfg.WhatsappFromNumber,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *WhatsappClient) Enabled() bool {
	return c.accountSID != "" && c.authToken != "" && c.fromNumber != ""
}

type whatsappMessage struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Send delivers body to the given E.164 number and returns the gateway message id.
func (c *WhatsappClient) Send(ctx context.Context, to, body string) (string, error) {
	if !c.Enabled() {
		return "", ErrWhatsappDisabled
	}

	form := url.Values{}
	form.Set("To", "whatsapp:"+to)
	form.Set("From", "whatsapp:"+c.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("whatsapp: gateway returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var out whatsappMessage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("whatsapp: decode response: %w", err)
	}
	return out.SID, nil
}
