package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func paymentRouter() *gin.Engine {
	router := gin.New()
	router.POST("/v1/payment/init", InitPayment)
	router.POST("/v1/payment/success", PaymentSuccess)
	router.POST("/v1/payment/fail", PaymentFail)
	router.POST("/v1/payment/cancel", PaymentCancel)
	return router
}

func seedUnpaidOrder(t *testing.T, db *gorm.DB) models.Order {
	t.Helper()
	order := models.Order{
		FullName:   "Jordan Blake",
		Email:      "jordan@example.com",
		Phone:      "+8801700000000",
		City:       "Dhaka",
		Country:    "Bangladesh",
		TotalPrice: 75.0,
		Status:     models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func postCallback(router *gin.Engine, path, tranID string) *httptest.ResponseRecorder {
	form := url.Values{"tran_id": {tranID}, "val_id": {"val-1"}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPaymentSuccessMarksOrderPaid(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("FRONTEND_URL", "https://shop.example.com")
	t.Setenv("SSL_VALIDATE", "false")

	order := seedUnpaidOrder(t, db)
	router := paymentRouter()

	w := postCallback(router, "/v1/payment/success", fmt.Sprintf("txn_%d_abc123", order.ID))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://shop.example.com/payment/status?status=success", w.Header().Get("Location"))

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.True(t, after.IsPaid)
	assert.Equal(t, "SSLCommerz", after.PaymentMethod)
	assert.Equal(t, models.OrderStatusProcessing, after.Status)
}

func TestPaymentSuccessReplayIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("FRONTEND_URL", "https://shop.example.com")
	t.Setenv("SSL_VALIDATE", "false")

	order := seedUnpaidOrder(t, db)
	router := paymentRouter()
	tranID := fmt.Sprintf("txn_%d_abc123", order.ID)

	postCallback(router, "/v1/payment/success", tranID)

	// Move the order forward, then replay the callback
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusShipped).Error)

	w := postCallback(router, "/v1/payment/success", tranID)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://shop.example.com/payment/status?status=success", w.Header().Get("Location"))

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.True(t, after.IsPaid)
	assert.Equal(t, models.OrderStatusShipped, after.Status, "replayed callback must not rewind the order")
}

func TestPaymentSuccessMalformedToken(t *testing.T) {
	setupTestDB(t)
	t.Setenv("FRONTEND_URL", "https://shop.example.com")

	router := paymentRouter()
	w := postCallback(router, "/v1/payment/success", "order_1_zzz")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://shop.example.com/payment/status?status=error", w.Header().Get("Location"))
}

func TestPaymentFailAndCancelLeaveOrderUntouched(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("FRONTEND_URL", "https://shop.example.com")

	order := seedUnpaidOrder(t, db)
	router := paymentRouter()
	tranID := fmt.Sprintf("txn_%d_abc123", order.ID)

	w := postCallback(router, "/v1/payment/fail", tranID)
	assert.Equal(t, "https://shop.example.com/payment/status?status=fail", w.Header().Get("Location"))

	w = postCallback(router, "/v1/payment/cancel", tranID)
	assert.Equal(t, "https://shop.example.com/payment/status?status=cancel", w.Header().Get("Location"))

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.False(t, after.IsPaid)
	assert.Equal(t, models.OrderStatusPending, after.Status)
}

func TestPaymentSuccessHonorsGatewayValidation(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("FRONTEND_URL", "https://shop.example.com")
	t.Setenv("SSL_VALIDATE", "true")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("val_id") == "val-1" {
			fmt.Fprint(w, `{"status":"VALID"}`)
			return
		}
		fmt.Fprint(w, `{"status":"INVALID_TRANSACTION"}`)
	}))
	defer server.Close()

	orig := Gateway
	Gateway = &utils.GatewayClient{
		StoreID:       "teststore",
		StorePassword: "testpass",
		SessionURL:    server.URL,
		ValidationURL: server.URL,
		HTTPClient:    &http.Client{Timeout: time.Second},
	}
	t.Cleanup(func() { Gateway = orig })

	router := paymentRouter()

	// Confirmed transaction goes through
	order := seedUnpaidOrder(t, db)
	w := postCallback(router, "/v1/payment/success", fmt.Sprintf("txn_%d_abc123", order.ID))
	assert.Equal(t, "https://shop.example.com/payment/status?status=success", w.Header().Get("Location"))
	var paid models.Order
	require.NoError(t, db.First(&paid, order.ID).Error)
	assert.True(t, paid.IsPaid)

	// A callback the validator does not confirm must not mark the order paid
	form := url.Values{"tran_id": {""}, "val_id": {"bogus"}}
	other := seedUnpaidOrder(t, db)
	form.Set("tran_id", fmt.Sprintf("txn_%d_def456", other.ID))
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/success", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://shop.example.com/payment/status?status=error", rec.Header().Get("Location"))
	var unpaid models.Order
	require.NoError(t, db.First(&unpaid, other.ID).Error)
	assert.False(t, unpaid.IsPaid)
	assert.Equal(t, models.OrderStatusPending, unpaid.Status)
}

func TestInitPaymentRejectsPaidOrder(t *testing.T) {
	db := setupTestDB(t)

	order := seedUnpaidOrder(t, db)
	require.NoError(t, db.Model(&order).Update("is_paid", true).Error)

	router := paymentRouter()
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/init",
		strings.NewReader(fmt.Sprintf(`{"order_id":%d}`, order.ID)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInitPaymentReturnsGatewayURL(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("BACKEND_URL", "https://api.example.com")

	var successURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		successURL = r.PostFormValue("success_url")
		fmt.Fprint(w, `{"status":"SUCCESS","GatewayPageURL":"https://pay.example.com/session/xyz"}`)
	}))
	defer server.Close()

	orig := Gateway
	Gateway = &utils.GatewayClient{
		StoreID:       "teststore",
		StorePassword: "testpass",
		SessionURL:    server.URL,
		ValidationURL: server.URL,
		HTTPClient:    &http.Client{Timeout: time.Second},
	}
	t.Cleanup(func() { Gateway = orig })

	order := seedUnpaidOrder(t, db)
	router := paymentRouter()
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/init",
		strings.NewReader(fmt.Sprintf(`{"order_id":%d}`, order.ID)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://pay.example.com/session/xyz")

	// Callback URLs come from the configured backend base
	assert.Equal(t, "https://api.example.com/v1/payment/success", successURL)
}
