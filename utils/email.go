package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/luxstore/backend/models"
	"gopkg.in/gomail.v2"
)

// sendMailFn delivers a composed message. Swapped out in tests.
var sendMailFn = smtpSend

func smtpSend(subject, body string, recipients []string) error {
	host := os.Getenv("SMTP_HOST")
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@luxstore.com"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendEmail dispatches a message asynchronously. Delivery is best-effort:
// the caller never waits and failures are only logged.
func SendEmail(subject, body string, recipients []string) {
	go func() {
		if err := sendMailFn(subject, body, recipients); err != nil {
			LogError("Failed to send email %q to %v: %v", subject, recipients, err)
		}
	}()
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(user *models.User) {
	subject := "Welcome to LuxStore!"
	body := fmt.Sprintf("Hi %s,\n\nThank you for creating an account with LuxStore. We are excited to have you!\n\nBest Regards,\nThe LuxStore Team", user.FullName)
	SendEmail(subject, body, []string{user.Email})
}

// SendOrderConfirmation notifies the buyer that the order was placed
func SendOrderConfirmation(order *models.Order) {
	subject := fmt.Sprintf("Order Confirmation #%d", order.ID)
	body := fmt.Sprintf("Hi %s,\n\nYour order #%d has been placed successfully.\nTotal Amount: %.2f\n\nWe will notify you once it ships.\n\nThank you for shopping with us!",
		order.FullName, order.ID, order.TotalPrice)
	SendEmail(subject, body, []string{order.Email})
}

// SendOrderStatusUpdate notifies the buyer of a status transition
func SendOrderStatusUpdate(order *models.Order) {
	subject := fmt.Sprintf("Order Update #%d", order.ID)
	body := fmt.Sprintf("Hi %s,\n\nYour order #%d status has been updated to: %s.\n\nTrack your order on our website.\n\nBest,\nLuxStore",
		order.FullName, order.ID, order.Status)
	SendEmail(subject, body, []string{order.Email})
}

// SendReturnStatusUpdate notifies the requester of a return decision
func SendReturnStatusUpdate(req *models.ReturnRequest, user *models.User) {
	note := req.AdminNote
	if note == "" {
		note = "N/A"
	}
	subject := fmt.Sprintf("Return Request Update #%d", req.ID)
	body := fmt.Sprintf("Hi %s,\n\nYour return request for Order #%d has been %s.\n\nReason for decision: %s\n\nBest,\nLuxStore",
		user.FullName, req.OrderID, req.Status, note)
	SendEmail(subject, body, []string{user.Email})
}

// SendRewardCoupon delivers a coupon earned through a rule trigger
func SendRewardCoupon(subject, name, email string, rule *models.CouponRule) {
	body := fmt.Sprintf("Hi %s,\n\nYou've qualified for a special reward:\n\nCode: %s\nDiscount: %.2f (%s)\n\nUse it on your next order!\nLuxStore Team",
		name, rule.Coupon.Code, rule.Coupon.DiscountValue, rule.Coupon.DiscountType)
	SendEmail(subject, body, []string{email})
}
