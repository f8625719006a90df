package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"

	"github.com/daniel-minto/minto-portfolio-api/config"
)

// OrderEmailData carries the order fields the notification templates use
type OrderEmailData struct {
	OrderNumber string
	ClientName  string
	ClientEmail string
	PackageType string
	TotalAmount decimal.Decimal
	Currency    string
}

// EmailService sends transactional notification emails. Sends are
// best-effort: callers log failures and never surface them.
type EmailService interface {
	// SendOrderConfirmation emails the client that the order was received
	SendOrderConfirmation(data OrderEmailData) error

	// SendAdminNotification emails the site owner about a new order
	SendAdminNotification(data OrderEmailData) error
}

// SMTPEmailService implements EmailService over SMTP
type SMTPEmailService struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

var emailServiceInstance EmailService

// InitEmailService initializes the SMTP email service from config
func InitEmailService(cfg *config.Config) EmailService {
	emailServiceInstance = &SMTPEmailService{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:       cfg.EmailFrom,
		adminEmail: cfg.AdminEmail,
	}
	return emailServiceInstance
}

// GetEmailService returns the initialized email service instance
func GetEmailService() EmailService {
	return emailServiceInstance
}

// SetEmailService sets the email service instance (primarily for testing)
func SetEmailService(service EmailService) {
	emailServiceInstance = service
}

// SendOrderConfirmation emails the client their order summary
func (s *SMTPEmailService) SendOrderConfirmation(data OrderEmailData) error {
	deposit := data.TotalAmount.Div(decimal.NewFromInt(2))

	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! We have successfully received your order (%s) for the %s package.\n\n"+
			"Total Amount: %s %s\n50%% Deposit Required: %s %s\n\n"+
			"We will contact you shortly to discuss the next steps and payment details.\n\n"+
			"Best regards,\nMinto's Portfolio Team",
		data.ClientName, data.OrderNumber, data.PackageType,
		data.Currency, data.TotalAmount.String(), data.Currency, deposit.String(),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", data.ClientEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation - %s", data.OrderNumber))
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}
	return nil
}

// SendAdminNotification emails the site owner about a new order
func (s *SMTPEmailService) SendAdminNotification(data OrderEmailData) error {
	body := fmt.Sprintf(
		"A new order has been placed by %s (%s).\n\nOrder details: Package - %s, Total Amount - %s %s",
		data.ClientName, data.ClientEmail, data.PackageType, data.Currency, data.TotalAmount.String(),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.adminEmail)
	m.SetHeader("Subject", fmt.Sprintf("New Order Received - %s", data.OrderNumber))
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send admin notification: %w", err)
	}
	return nil
}
