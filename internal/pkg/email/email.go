package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/exellar/payroll-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendLoginNotification(to, ipAddress, userAgent string, at time.Time) error
	SendPayslipNotice(to, employeeName, period, netPay string) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   func(attempt int) time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	return newEmailService(cfg, smtp.SendMail)
}

func newEmailService(cfg config.SMTPConfig, send sendFunc) (*emailServiceImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      send,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<(attempt-1)) * time.Second
		},
	}, nil
}

type loginNotificationData struct {
	Email     string
	IPAddress string
	UserAgent string
	At        string
}

// SendLoginNotification tells a user their account was just signed in to.
func (s *emailServiceImpl) SendLoginNotification(to, ipAddress, userAgent string, at time.Time) error {
	data := loginNotificationData{
		Email:     to,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		At:        at.UTC().Format("02 Jan 2006 15:04 MST"),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "login_notification.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "New sign-in to your payroll account", body.String())
}

type payslipNoticeData struct {
	EmployeeName string
	Period       string
	NetPay       string
}

func (s *emailServiceImpl) SendPayslipNotice(to, employeeName, period, netPay string) error {
	data := payslipNoticeData{
		EmployeeName: employeeName,
		Period:       period,
		NetPay:       netPay,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "payslip_notice.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Salary paid for %s", period), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		if attempt < maxRetries {
			time.Sleep(s.backoff(attempt))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
