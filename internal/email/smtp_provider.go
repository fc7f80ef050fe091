package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return errors.New("smtp host is required")
	}
	if c.SMTPPort == 0 {
		return errors.New("smtp port is required")
	}
	if c.FromEmail == "" {
		return errors.New("from email is required")
	}
	return nil
}

// SMTPProvider delivers mail over SMTP via gomail.
type SMTPProvider struct {
	config Config
	dialer *gomail.Dialer
}

func NewSMTPProvider(config Config) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	dialer := gomail.NewDialer(
		config.SMTPHost,
		config.SMTPPort,
		config.SMTPUsername,
		config.SMTPPassword,
	)

	return &SMTPProvider{
		config: config,
		dialer: dialer,
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}
	if p.config.FromName != "" {
		m.SetAddressHeader("From", from, p.config.FromName)
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendWelcome(to, username string) error {
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Welcome to PlantPal",
		Body:    fmt.Sprintf("Hi %s,\n\nWelcome to PlantPal! Add your first plant and we'll keep track of its care schedule for you.\n", username),
	})
}

func (p *SMTPProvider) SendTrialReminder(to, username string, daysRemaining int) error {
	noun := "days"
	if daysRemaining == 1 {
		noun = "day"
	}
	return p.Send(&Email{
		To:      []string{to},
		Subject: fmt.Sprintf("Your PlantPal trial ends in %d %s", daysRemaining, noun),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour premium trial ends in %d %s. Upgrade now to keep unlimited plant identifications and premium care features.\n",
			username, daysRemaining, noun),
	})
}

func (p *SMTPProvider) Validate() error {
	return p.config.Validate()
}

func (p *SMTPProvider) Close() error {
	return nil
}
