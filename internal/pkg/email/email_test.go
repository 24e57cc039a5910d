package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMail struct {
	addr string
	to   []string
	msg  string
}

func newTestService(t *testing.T, cfg config.SMTPConfig, send sendFunc) *emailServiceImpl {
	t.Helper()
	s, err := newEmailService(cfg, send)
	require.NoError(t, err)
	s.backoff = func(int) time.Duration { return 0 }
	return s
}

func TestSend_SkipsWhenUnconfigured(t *testing.T) {
	called := false
	s := newTestService(t, config.SMTPConfig{}, func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	})

	require.NoError(t, s.SendLoginNotification("a@example.com", "127.0.0.1", "curl", time.Now()))
	assert.False(t, called)
}

func TestSendPayslipNotice_RendersTemplate(t *testing.T) {
	var got recordedMail
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: 2525, From: "payroll@example.com", FromName: "Payroll"}
	s := newTestService(t, cfg, func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		got = recordedMail{addr: addr, to: to, msg: string(msg)}
		return nil
	})

	require.NoError(t, s.SendPayslipNotice("emp@example.com", "Asha Rao", "May 2024", "35800.00"))

	assert.Equal(t, "smtp.example.com:2525", got.addr)
	assert.Equal(t, []string{"emp@example.com"}, got.to)
	assert.Contains(t, got.msg, "Subject: Salary paid for May 2024")
	assert.Contains(t, got.msg, "Dear Asha Rao")
	assert.Contains(t, got.msg, "35800.00")
}

func TestSend_RetriesThenFails(t *testing.T) {
	attempts := 0
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: 25}
	s := newTestService(t, cfg, func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		return errors.New("connection refused")
	})

	err := s.SendLoginNotification("a@example.com", "10.0.0.1", "browser", time.Now())
	require.Error(t, err)
	assert.Equal(t, maxRetries, attempts)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))
}
