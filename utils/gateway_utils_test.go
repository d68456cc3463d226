package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luxstore/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *models.Order {
	return &models.Order{
		ID:           42,
		FullName:     "Jordan Blake",
		Email:        "jordan@example.com",
		Phone:        "+8801700000000",
		AddressLine1: "12 Harbor Lane",
		City:         "Dhaka",
		Country:      "Bangladesh",
		TotalPrice:   129.99,
	}
}

func testGatewayClient(serverURL string) *GatewayClient {
	return &GatewayClient{
		StoreID:       "teststore",
		StorePassword: "testpass",
		SessionURL:    serverURL,
		ValidationURL: serverURL,
		HTTPClient:    &http.Client{Timeout: 500 * time.Millisecond},
	}
}

func TestBuildTransactionID(t *testing.T) {
	tranID := BuildTransactionID(42)
	assert.Regexp(t, `^txn_42_[0-9a-f-]{6}$`, tranID)

	// Two tokens for the same order must differ
	assert.NotEqual(t, tranID, BuildTransactionID(42))

	orderID, err := ParseOrderIDFromTransaction(tranID)
	require.NoError(t, err)
	assert.EqualValues(t, 42, orderID)
}

func TestParseOrderIDFromTransactionRejectsMalformed(t *testing.T) {
	for _, tranID := range []string{"", "txn_42", "order_42_abc123", "txn_abc_def456"} {
		_, err := ParseOrderIDFromTransaction(tranID)
		assert.Error(t, err, "expected rejection of %q", tranID)
	}
}

func TestInitiateSessionSuccess(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"store_id":     r.PostFormValue("store_id"),
			"tran_id":      r.PostFormValue("tran_id"),
			"total_amount": r.PostFormValue("total_amount"),
			"currency":     r.PostFormValue("currency"),
			"success_url":  r.PostFormValue("success_url"),
		}
		fmt.Fprint(w, `{"status":"SUCCESS","GatewayPageURL":"https://pay.example.com/session/abc"}`)
	}))
	defer server.Close()

	client := testGatewayClient(server.URL)
	gatewayURL, err := client.InitiateSession(testOrder(), "txn_42_abc123", "https://api.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/session/abc", gatewayURL)

	assert.Equal(t, "teststore", gotForm["store_id"])
	assert.Equal(t, "txn_42_abc123", gotForm["tran_id"])
	assert.Equal(t, "129.99", gotForm["total_amount"])
	assert.Equal(t, "BDT", gotForm["currency"])
	assert.Equal(t, "https://api.example.com/v1/payment/success", gotForm["success_url"])
}

func TestInitiateSessionGatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"FAILED","failedreason":"store credential mismatch"}`)
	}))
	defer server.Close()

	client := testGatewayClient(server.URL)
	_, err := client.InitiateSession(testOrder(), "txn_42_abc123", "https://api.example.com")
	require.Error(t, err)

	var initErr *PaymentInitError
	require.True(t, errors.As(err, &initErr))
	assert.Contains(t, initErr.Reason, "rejected")
	assert.Equal(t, "store credential mismatch", initErr.Details["failedreason"])
}

func TestInitiateSessionTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	client := testGatewayClient(server.URL)
	_, err := client.InitiateSession(testOrder(), "txn_42_abc123", "https://api.example.com")
	require.Error(t, err)

	var initErr *PaymentInitError
	require.True(t, errors.As(err, &initErr))
	assert.Contains(t, initErr.Reason, "unreachable")
}

func TestInitiateSessionGarbledResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer server.Close()

	client := testGatewayClient(server.URL)
	_, err := client.InitiateSession(testOrder(), "txn_42_abc123", "https://api.example.com")
	require.Error(t, err)

	var initErr *PaymentInitError
	require.True(t, errors.As(err, &initErr))
	assert.Contains(t, initErr.Reason, "invalid gateway response")
}

func TestValidateTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("val_id") {
		case "good":
			fmt.Fprint(w, `{"status":"VALID"}`)
		case "settled":
			fmt.Fprint(w, `{"status":"VALIDATED"}`)
		default:
			fmt.Fprint(w, `{"status":"INVALID_TRANSACTION"}`)
		}
	}))
	defer server.Close()

	client := testGatewayClient(server.URL)

	valid, err := client.ValidateTransaction("good")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = client.ValidateTransaction("settled")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = client.ValidateTransaction("bogus")
	require.NoError(t, err)
	assert.False(t, valid)
}
