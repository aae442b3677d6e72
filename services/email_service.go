package services

import (
	"fmt"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"

	"github.com/anritvox/backend-anritvox/structs"
	"github.com/anritvox/backend-anritvox/structs/tables"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

// EmailService sends transactional notifications. Every send is
// best-effort: failures are logged and never propagate into the
// operation that triggered the email.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) send(to []string, subject string, body string) {
	// No API key means a local environment; sends are a no-op.
	if es.cfg.Email.ApiKey == "" {
		return
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	if _, err := es.client.Emails.Send(params); err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to), gecho.Field("subject", subject))
	}
}

// SendWarrantyReceived confirms to the requester that their registration
// was received and is awaiting review.
func (es *EmailService) SendWarrantyReceived(registration *tables.WarrantyRegistration, details *structs.SerialContext) {
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a73e8; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Warranty registration received</h1>
				</div>
				<div class="content">
					<p>Dear %s,</p>
					<p>We have received your warranty registration. It is pending review and you will hear from us once it has been processed.</p>

					<div class="details">
						<p><strong>Product:</strong> %s</p>
						<p><strong>Serial number:</strong> %s</p>
						<p><strong>Registration ID:</strong> %s</p>
					</div>

					<p>No further action is needed from your side.</p>
				</div>
				<div class="footer">
					<p>Anritvox | Product Support</p>
				</div>
			</div>
		</body>
		</html>
	`, registration.UserName, details.ProductName, details.Serial, registration.ID)

	es.send([]string{registration.UserEmail}, "Your warranty registration has been received", body)
}

// SendWarrantyStatusChanged notifies the requester of an accept or
// reject decision.
func (es *EmailService) SendWarrantyStatusChanged(registration *tables.WarrantyRegistration) {
	var headline, detail string
	switch registration.Status {
	case tables.WarrantyStatusAccepted:
		headline = "Warranty registration accepted"
		detail = "Your warranty registration has been accepted. Your product is now covered."
	case tables.WarrantyStatusRejected:
		headline = "Warranty registration rejected"
		detail = "Your warranty registration has been rejected. If you believe this is a mistake, please contact our support team."
	default:
		return
	}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a73e8; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>%s</h1>
				</div>
				<div class="content">
					<p>Dear %s,</p>
					<p>%s</p>

					<div class="details">
						<p><strong>Registration ID:</strong> %s</p>
						<p><strong>Status:</strong> %s</p>
					</div>
				</div>
				<div class="footer">
					<p>Anritvox | Product Support</p>
				</div>
			</div>
		</body>
		</html>
	`, headline, registration.UserName, detail, registration.ID, registration.Status)

	es.send([]string{registration.UserEmail}, headline, body)
}

// SendContactNotification forwards a contact form submission to the
// site admin inbox.
func (es *EmailService) SendContactNotification(message *tables.ContactMessage) {
	if es.cfg.Email.AdminAddr == "" {
		return
	}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.details { background-color: #f9f9f9; padding: 15px; margin: 15px 0; border-radius: 5px; }
			</style>
		</head>
		<body>
			<div class="container">
				<h2>New contact message</h2>
				<div class="details">
					<p><strong>Name:</strong> %s</p>
					<p><strong>Email:</strong> %s</p>
					<p><strong>Phone:</strong> %s</p>
				</div>
				<p>%s</p>
			</div>
		</body>
		</html>
	`, message.Name, message.Email, message.Phone, message.Message)

	es.send([]string{es.cfg.Email.AdminAddr}, fmt.Sprintf("New contact message from %s", message.Name), body)
}
