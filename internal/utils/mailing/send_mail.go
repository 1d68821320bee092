package mailing

import (
	"cookbook-backend/internal/utils"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		config MailConfig
	}
)

func NewMailer(config MailConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT %q: %w", m.config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func OTPMailBody(code string, purpose string, minutes int) string {
	return fmt.Sprintf(
		`<p>Your %s verification code is <b>%s</b>.</p><p>The code expires in %d minutes. If you did not request it, ignore this email.</p>`,
		purpose, code, minutes,
	)
}
