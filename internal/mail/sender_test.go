package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devjjun/commu/internal/config"
	"github.com/devjjun/commu/internal/domain"
)

func TestSMTPSender_Send(t *testing.T) {
	cfg := &config.Config{
		SMTPHost: "mail.example.com",
		SMTPPort: "25",
		SMTPFrom: "no-reply@example.com",
	}
	sender := NewSMTPSender(cfg)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	job := domain.MailJob{JobID: "j1", Destination: "user@example.com", Subject: "Welcome", Body: "hi"}
	require.NoError(t, sender.Send(context.Background(), job))

	assert.Equal(t, "mail.example.com:25", gotAddr)
	assert.Equal(t, "no-reply@example.com", gotFrom)
	assert.Equal(t, []string{"user@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Welcome\r\n")
	assert.Contains(t, string(gotMsg), "\r\n\r\nhi")
}

func TestSMTPSender_SendError(t *testing.T) {
	sender := NewSMTPSender(&config.Config{SMTPHost: "localhost", SMTPPort: "25", SMTPFrom: "x@y"})
	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := sender.Send(context.Background(), domain.MailJob{Destination: "user@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewSMTPSender_AuthOnlyWithUsername(t *testing.T) {
	plain := NewSMTPSender(&config.Config{SMTPHost: "h", SMTPPort: "25", SMTPFrom: "x@y"})
	assert.Nil(t, plain.auth)

	authed := NewSMTPSender(&config.Config{SMTPHost: "h", SMTPPort: "25", SMTPFrom: "x@y", SMTPUsername: "u", SMTPPassword: "p"})
	assert.NotNil(t, authed.auth)
}
