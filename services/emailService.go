package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
	from   string
}

var emailService *EmailService

// InitEmailService initializes the email service with the Resend API. Without
// an API key the service stays in log-only mode: sends succeed but only write
// to the log, so local development works without credentials.
func InitEmailService() {
	from := os.Getenv("RESEND_FROM_EMAIL")
	if from == "" {
		from = "ChurchLoop <noreply@churchloop.app>"
	}

	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Emails will be logged instead of sent.")
		emailService = &EmailService{from: from}
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
		from:   from,
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance.
func GetEmailService() *EmailService {
	return emailService
}

func (s *EmailService) send(to []string, subject string, htmlBody string) error {
	if s == nil {
		return nil
	}
	if s.client == nil {
		log.Printf("email (log-only) to %v: %s", to, subject)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send email %q to %v: %v", subject, to, err)
		return err
	}

	log.Printf("Email %q sent to %v (id: %s)", subject, to, sent.Id)
	return nil
}

// SendWelcomeEmail greets a newly registered church administrator.
func (s *EmailService) SendWelcomeEmail(toEmail, firstName, churchName string) error {
	appURL := os.Getenv("FRONTEND_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #4a6da7;">Welcome to ChurchLoop</h1>
    <p>Hi %s,</p>
    <p><strong>%s</strong> is now set up on ChurchLoop. You can start adding
    members, scheduling events and recording donations right away.</p>
    <p><a href="%s" style="background-color: #4a6da7; color: #ffffff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">Open your dashboard</a></p>
    <p style="color: #666; font-size: 12px;">You received this email because an
    account was created with this address.</p>
</div>`, firstName, churchName, appURL)

	return s.send([]string{toEmail}, "Welcome to ChurchLoop", htmlBody)
}

// SendDonationReceipt emails a donor confirmation of a recorded donation.
func (s *EmailService) SendDonationReceipt(toEmail, donorName string, amount float64, currency string, donationType string, date time.Time) error {
	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #4a6da7;">Donation Receipt</h1>
    <p>Dear %s,</p>
    <p>Thank you for your generous contribution. This email confirms we have
    recorded the following donation:</p>
    <table style="border-collapse: collapse; width: 100%%;">
        <tr><td style="padding: 8px; border: 1px solid #ddd;">Amount</td><td style="padding: 8px; border: 1px solid #ddd;"><strong>%s %.2f</strong></td></tr>
        <tr><td style="padding: 8px; border: 1px solid #ddd;">Type</td><td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
        <tr><td style="padding: 8px; border: 1px solid #ddd;">Date</td><td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>
    </table>
    <p>May God bless you for your faithfulness in giving.</p>
</div>`, donorName, currency, amount, donationType, date.Format("January 2, 2006"))

	return s.send([]string{toEmail}, "Your Donation Receipt", htmlBody)
}

// SendEventReminder notifies recipients about an upcoming event.
func (s *EmailService) SendEventReminder(toEmails []string, eventTitle, location string, startDate time.Time) error {
	if len(toEmails) == 0 {
		return nil
	}

	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #4a6da7;">Event Reminder</h1>
    <p><strong>%s</strong> is coming up.</p>
    <p>When: %s<br>Where: %s</p>
    <p>We look forward to seeing you there.</p>
</div>`, eventTitle, startDate.Format("Monday, January 2 at 3:04 PM"), location)

	return s.send(toEmails, fmt.Sprintf("Reminder: %s", eventTitle), htmlBody)
}

// SendAnnouncement fans an announcement message out by email.
func (s *EmailService) SendAnnouncement(toEmails []string, subject, content string) error {
	if len(toEmails) == 0 {
		return nil
	}

	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #4a6da7;">%s</h1>
    <p>%s</p>
</div>`, subject, content)

	return s.send(toEmails, subject, htmlBody)
}
