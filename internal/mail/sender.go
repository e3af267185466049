package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/devjjun/commu/internal/config"
	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/logger"
)

// Sender delivers a single mail job. Implementations report transient and
// permanent failures alike through the returned error; the worker decides
// whether to retry.
type Sender interface {
	Send(ctx context.Context, job domain.MailJob) error
}

// SMTPSender delivers mail over plain SMTP
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth

	// sendMail is swapped in tests
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender builds a sender from the SMTP settings in cfg
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &SMTPSender{
		addr:     cfg.SMTPHost + ":" + cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

func (s *SMTPSender) Send(ctx context.Context, job domain.MailJob) error {
	msg := buildMessage(s.from, job)

	if err := s.sendMail(s.addr, s.auth, s.from, []string{job.Destination}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgMailSent, "jobID", job.JobID, "destination", job.Destination)
	return nil
}

func buildMessage(from string, job domain.MailJob) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", job.Destination)
	fmt.Fprintf(&b, "Subject: %s\r\n", job.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(job.Body)
	return []byte(b.String())
}
