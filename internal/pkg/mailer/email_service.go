package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, displayName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendWelcome(toEmail, displayName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to Tria AI")

	name := displayName
	if name == "" {
		name = "there"
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s, welcome to Tria AI!</h2>
			<p>Your account is ready. Jump into a triple chat and meet Ram and Laxman:</p>
			<a href="%s/chat" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Start chatting</a>
			<p>If you didn't create this account, please ignore this email.</p>
		</div>
	`, name, s.frontendURL)

	m.SetBody("text/html", body)

	// Delivery failures are returned as-is; the caller decides whether
	// a failed welcome email is worth surfacing.
	return s.dialer.DialAndSend(m)
}
