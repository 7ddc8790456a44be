package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOTPEmail(email, code string, validFor time.Duration) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOTPEmail(email, code string, validFor time.Duration) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Fill Rate Dashboard - Your OTP: %s", code))

	minutes := int(validFor / time.Minute)
	body := fmt.Sprintf(`
		<h2>Fill Rate Gap Dashboard</h2>
		<p>You have requested access to the fill rate gap dashboard.
		Use the following one-time password to complete your login:</p>
		<h1 style="letter-spacing: 8px; font-family: monospace;">%s</h1>
		<p>This OTP is valid for <strong>%d minutes</strong> only.
		Do not share this code with anyone.</p>
		<p>If you didn't request this, please ignore this email.</p>
		<p style="color: #6b7280;">Sent to %s at %s</p>
	`, code, minutes, email, time.Now().Format("2006-01-02 15:04:05"))

	m.SetBody("text/html", body)

	m.AddAlternative("text/plain", fmt.Sprintf(
		"Fill Rate Gap Dashboard\n\nYour OTP for login: %s\n\nThis OTP is valid for %d minutes only.\nDo not share this code with anyone.\n",
		code, minutes,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}
