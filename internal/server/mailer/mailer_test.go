package mailer

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	msgs []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.msgs = append(f.msgs, m...)
	return f.err
}

func TestNewSMTPMailer_Validation(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{Port: 25, From: "a@b.c"})
	assert.Error(t, err)
	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp", From: "a@b.c"})
	assert.Error(t, err)
	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp", Port: 25})
	assert.Error(t, err)

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp", Port: 25, From: "shop@x.com"})
	require.NoError(t, err)
	assert.NotNil(t, m.dialer)
}

func TestSMTPMailer_SendHTML(t *testing.T) {
	fs := &fakeSender{}
	m := &SMTPMailer{from: "shop@x.com", dialer: fs}

	err := m.SendHTML([]string{"bob@x.com"}, "Your Password Reset Token", `<a href="http://shop/reset?resetToken=abc">reset</a>`)
	require.NoError(t, err)
	require.Len(t, fs.msgs, 1)

	msg := fs.msgs[0]
	assert.Equal(t, []string{"shop@x.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"bob@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your Password Reset Token"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
	assert.Contains(t, buf.String(), "resetToken")
}

func TestSMTPMailer_Errors(t *testing.T) {
	m := &SMTPMailer{from: "shop@x.com", dialer: &fakeSender{err: errors.New("relay down")}}

	assert.EqualError(t, m.SendHTML([]string{"bob@x.com"}, "s", "b"), "relay down")
	assert.Error(t, m.SendHTML(nil, "s", "b"))
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(logging.NewJSONLogger(&buf, slog.LevelDebug))

	require.NoError(t, m.SendHTML([]string{"bob@x.com"}, "Reset", "link-here"))
	assert.Contains(t, buf.String(), "bob@x.com")
	assert.Contains(t, buf.String(), "link-here")
	assert.Contains(t, buf.String(), `"module":"mailer"`)

	assert.Error(t, m.SendHTML(nil, "s", "b"))
}
