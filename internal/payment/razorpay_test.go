package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, orderID string, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func Test_VerifySignature_Valid(t *testing.T) {
	secret := "test_secret"
	sig := sign(secret, "order_abc", "pay_xyz")

	assert.True(t, VerifySignature(secret, "order_abc", "pay_xyz", sig))
}

func Test_VerifySignature_Tampered(t *testing.T) {
	secret := "test_secret"
	sig := sign(secret, "order_abc", "pay_xyz")

	assert.False(t, VerifySignature(secret, "order_abc", "pay_other", sig))
	assert.False(t, VerifySignature(secret, "order_other", "pay_xyz", sig))
	assert.False(t, VerifySignature("wrong_secret", "order_abc", "pay_xyz", sig))
}

func Test_VerifySignature_EmptyInputs(t *testing.T) {
	assert.False(t, VerifySignature("s", "", "pay", "sig"))
	assert.False(t, VerifySignature("s", "order", "", "sig"))
	assert.False(t, VerifySignature("s", "order", "pay", ""))
}

func Test_CreateOrder_PostsAmountAndParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 65000, body["amount"])
		assert.Equal(t, "INR", body["currency"])

		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_test123",
			Amount:   65000,
			Currency: "INR",
			Receipt:  body["receipt"].(string),
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("key_id", "key_secret", srv.URL)
	order, err := c.CreateOrder(context.Background(), 65000, "INR", "rcpt_1")

	assert.NoError(t, err)
	assert.Equal(t, "order_test123", order.ID)
	assert.EqualValues(t, 65000, order.Amount)
	assert.Equal(t, "key_id", c.KeyID())
}

func Test_CreateOrder_RejectsNonPositiveAmount(t *testing.T) {
	c := NewClient("k", "s")
	_, err := c.CreateOrder(context.Background(), 0, "INR", "rcpt")
	assert.Error(t, err)
}

func Test_CreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"bad amount"}}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k", "s", srv.URL)
	_, err := c.CreateOrder(context.Background(), 100, "INR", "rcpt")
	assert.Error(t, err)
}
