package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error carrying an HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequestError creates a 400 Bad Request error
func BadRequestError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// ForbiddenError creates a 403 Forbidden error
func ForbiddenError(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, message, err)
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Domain errors raised by the checkout, payment and return workflows.
var (
	// ErrForbidden is returned when a user acts on an order they do not own
	ErrForbidden = errors.New("you can only act on your own orders")
	// ErrNotEligible is returned when a return is requested before delivery
	ErrNotEligible = errors.New("order must be delivered before requesting a return")
	// ErrReturnWindowExpired is returned when the return window has passed
	ErrReturnWindowExpired = errors.New("return window has expired")
)

// ProductNotFoundError identifies the missing product by slug
type ProductNotFoundError struct {
	Slug string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with slug '%s' does not exist", e.Slug)
}

// InsufficientStockError reports a stock shortfall for a single item.
// Checkout validation raises it before any mutation happens.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for '%s'. Available: %d, Requested: %d",
		e.Product, e.Available, e.Requested)
}

// PaymentInitError carries the gateway diagnostic payload when a
// hosted-payment session could not be created
type PaymentInitError struct {
	Reason  string
	Details map[string]interface{}
}

func (e *PaymentInitError) Error() string {
	return fmt.Sprintf("failed to initiate payment: %s", e.Reason)
}
