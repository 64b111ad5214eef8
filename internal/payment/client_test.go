package payment

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/domain"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestInitializeSuccess(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://pay.example/abc123",
				"access_code": "abc123",
				"reference": "PSK-1-deadbeef"
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test_secret", time.Second, testLogger())
	init, err := client.Initialize(context.Background(), InitializeInput{
		Email:       "shopper@example.com",
		AmountCents: 250000,
		Reference:   "PSK-1-deadbeef",
		CallbackURL: "https://shop.example/payment/callback",
		Currency:    "NGN",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example/abc123", init.AuthorizationURL)
	assert.Equal(t, "abc123", init.AccessCode)
	assert.Equal(t, "PSK-1-deadbeef", init.Reference)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Contains(t, string(gotBody), `"amount":250000`)
	assert.Contains(t, string(gotBody), `"callback_url":"https://shop.example/payment/callback"`)
}

func TestInitializeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_bad", time.Second, testLogger())
	_, err := client.Initialize(context.Background(), InitializeInput{Reference: "PSK-1-x"})
	require.Error(t, err)

	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "PSK-1-x", initErr.Reference)
	assert.Equal(t, http.StatusBadRequest, initErr.StatusCode)
	assert.Equal(t, "Invalid key", initErr.Message)
}

func TestInitializeGatewayUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "sk", 100*time.Millisecond, testLogger())
	_, err := client.Initialize(context.Background(), InitializeInput{Reference: "PSK-1-x"})

	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "gateway unreachable", initErr.Message)
}

func TestVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/PSK-1-deadbeef", r.URL.Path)
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"reference": "PSK-1-deadbeef",
				"amount": 250000,
				"currency": "NGN",
				"channel": "card",
				"paid_at": "2026-08-30T14:05:00Z",
				"customer": {"email": "shopper@example.com"},
				"metadata": {"customerName": "Ada Test"}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk", time.Second, testLogger())
	tx, err := client.Verify(context.Background(), "PSK-1-deadbeef")
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionSuccess, tx.Status)
	assert.Equal(t, "PSK-1-deadbeef", tx.Reference)
	assert.Equal(t, int64(250000), tx.AmountCents)
	assert.Equal(t, "NGN", tx.Currency)
	assert.Equal(t, "card", tx.Channel)
	assert.Equal(t, "shopper@example.com", tx.CustomerEmail)
	assert.Equal(t, "Ada Test", tx.Metadata.CustomerName)
	require.NotNil(t, tx.PaidAt)
	assert.Equal(t, time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC), tx.PaidAt.UTC())
}

func TestVerifyFailedTransactionStillParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "failed", "reference": "PSK-1-x", "amount": 100}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk", time.Second, testLogger())
	tx, err := client.Verify(context.Background(), "PSK-1-x")
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionFailed, tx.Status)
	assert.Nil(t, tx.PaidAt)
}

func TestVerifyUnknownReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk", time.Second, testLogger())
	_, err := client.Verify(context.Background(), "PSK-404")

	var verifyErr *VerifyError
	require.ErrorAs(t, err, &verifyErr)
	assert.Equal(t, http.StatusNotFound, verifyErr.StatusCode)
	assert.Equal(t, "Transaction reference not found", verifyErr.Message)
}

func TestGenerateReferenceDistinct(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		ref := GenerateReference()
		require.True(t, strings.HasPrefix(ref, "PSK-"), "unexpected format %q", ref)
		require.False(t, seen[ref], "duplicate reference %q", ref)
		seen[ref] = true
	}
}
