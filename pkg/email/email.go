package email

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP configuration
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	ShopEmail    string // inbox that receives contact-query notifications
}

// Attachment is a file attached to an outgoing message
type Attachment struct {
	Filename string
	Data     []byte
}

// Service sends transactional email over SMTP
type Service struct {
	config Config
	dialer *gomail.Dialer
}

// NewService creates a new email service
func NewService(config Config) *Service {
	return &Service{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUsername, config.SMTPPassword),
	}
}

// ShopEmail returns the shop's notification inbox
func (s *Service) ShopEmail() string {
	return s.config.ShopEmail
}

// Send delivers an HTML message with optional attachments
func (s *Service) Send(to, subject, htmlBody string, attachments ...Attachment) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	for _, att := range attachments {
		data := att.Data
		m.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
