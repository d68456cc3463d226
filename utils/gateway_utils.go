package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/luxstore/backend/models"
)

const (
	gatewaySandboxURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	gatewayLiveURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"

	validationSandboxURL = "https://sandbox.sslcommerz.com/validator/api/validationserverAPI.php"
	validationLiveURL    = "https://securepay.sslcommerz.com/validator/api/validationserverAPI.php"
)

// GatewayClient talks to the SSLCommerz hosted-payment API. Session
// creation is a form POST answered with JSON {status, GatewayPageURL}.
type GatewayClient struct {
	StoreID       string
	StorePassword string
	SessionURL    string
	ValidationURL string
	HTTPClient    *http.Client
}

// NewGatewayClient builds a client from the environment with a bounded
// request timeout; a hung gateway must not hang checkout.
func NewGatewayClient() *GatewayClient {
	sessionURL := gatewayLiveURL
	validationURL := validationLiveURL
	if os.Getenv("SSL_IS_SANDBOX") != "false" {
		sessionURL = gatewaySandboxURL
		validationURL = validationSandboxURL
	}
	return &GatewayClient{
		StoreID:       os.Getenv("SSL_STORE_ID"),
		StorePassword: os.Getenv("SSL_STORE_PASSWORD"),
		SessionURL:    sessionURL,
		ValidationURL: validationURL,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// BuildTransactionID creates the globally-unique gateway token for an order
func BuildTransactionID(orderID uint) string {
	return fmt.Sprintf("txn_%d_%s", orderID, uuid.New().String()[:6])
}

// ParseOrderIDFromTransaction recovers the order id from a txn_<id>_<suffix>
// token produced by BuildTransactionID
func ParseOrderIDFromTransaction(tranID string) (uint, error) {
	parts := strings.Split(tranID, "_")
	if len(parts) < 3 || parts[0] != "txn" {
		return 0, fmt.Errorf("malformed transaction id: %q", tranID)
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed order id in transaction %q: %v", tranID, err)
	}
	return uint(id), nil
}

// InitiateSession creates a hosted-payment session for the order and
// returns the gateway page URL the buyer should be redirected to.
// Network errors and gateway rejections both map to PaymentInitError.
func (g *GatewayClient) InitiateSession(order *models.Order, tranID, callbackBase string) (string, error) {
	form := url.Values{
		"store_id":         {g.StoreID},
		"store_passwd":     {g.StorePassword},
		"total_amount":     {fmt.Sprintf("%.2f", order.TotalPrice)},
		"currency":         {"BDT"},
		"tran_id":          {tranID},
		"success_url":      {callbackBase + "/v1/payment/success"},
		"fail_url":         {callbackBase + "/v1/payment/fail"},
		"cancel_url":       {callbackBase + "/v1/payment/cancel"},
		"emi_option":       {"0"},
		"cus_name":         {order.FullName},
		"cus_email":        {order.Email},
		"cus_phone":        {order.Phone},
		"cus_add1":         {order.AddressLine1},
		"cus_city":         {order.City},
		"cus_country":      {order.Country},
		"shipping_method":  {"NO"},
		"product_name":     {"Items"},
		"product_category": {"General"},
		"product_profile":  {"general"},
	}

	resp, err := g.HTTPClient.PostForm(g.SessionURL, form)
	if err != nil {
		return "", &PaymentInitError{Reason: "gateway unreachable: " + err.Error()}
	}
	defer resp.Body.Close()

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &PaymentInitError{Reason: "invalid gateway response: " + err.Error()}
	}

	if status, _ := payload["status"].(string); status != "SUCCESS" {
		return "", &PaymentInitError{Reason: "gateway rejected session", Details: payload}
	}

	gatewayURL, _ := payload["GatewayPageURL"].(string)
	if gatewayURL == "" {
		return "", &PaymentInitError{Reason: "gateway returned no redirect URL", Details: payload}
	}
	return gatewayURL, nil
}

// ValidateTransaction confirms a callback with the gateway's validation
// API before the order is trusted as paid
func (g *GatewayClient) ValidateTransaction(valID string) (bool, error) {
	query := url.Values{
		"val_id":       {valID},
		"store_id":     {g.StoreID},
		"store_passwd": {g.StorePassword},
		"format":       {"json"},
	}

	resp, err := g.HTTPClient.Get(g.ValidationURL + "?" + query.Encode())
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, err
	}
	return payload.Status == "VALID" || payload.Status == "VALIDATED", nil
}
