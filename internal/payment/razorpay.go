package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway creates pending-payment records ("orders" in Razorpay terms)
// and verifies the signature the client reports after paying.
type Gateway interface {
	// CreateOrder registers a payment intent for the given amount in
	// minor currency units (paise for INR).
	CreateOrder(ctx context.Context, amountMinor int64, currency string, receipt string) (GatewayOrder, error)

	// VerifySignature checks the HMAC the gateway computed over
	// "<gatewayOrderID>|<paymentID>". Payment must not be recorded
	// unless this passes.
	VerifySignature(gatewayOrderID string, paymentID string, signature string) bool

	// KeyID returns the public key identifier the browser checkout
	// needs to open a payment for this account.
	KeyID() string
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

const defaultBaseURL = "https://api.razorpay.com"

// Client talks to the Razorpay Orders API with basic auth.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

func NewClient(keyID string, keySecret string) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a stub server.
func NewClientWithBaseURL(keyID string, keySecret string, baseURL string) *Client {
	c := NewClient(keyID, keySecret)
	c.baseURL = baseURL
	return c
}

func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency string, receipt string) (GatewayOrder, error) {
	if amountMinor <= 0 {
		return GatewayOrder{}, fmt.Errorf("razorpay: invalid amount %d", amountMinor)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return GatewayOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("razorpay: create order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return GatewayOrder{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return GatewayOrder{}, fmt.Errorf("razorpay: create order failed with status %d", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return GatewayOrder{}, err
	}
	if order.ID == "" {
		return GatewayOrder{}, fmt.Errorf("razorpay: response missing order id")
	}
	return order, nil
}

// VerifySignature recomputes HMAC-SHA256(keySecret, orderID|paymentID)
// and compares it to the client-reported signature in constant time.
func (c *Client) VerifySignature(gatewayOrderID string, paymentID string, signature string) bool {
	return VerifySignature(c.keySecret, gatewayOrderID, paymentID, signature)
}

func VerifySignature(keySecret string, gatewayOrderID string, paymentID string, signature string) bool {
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
