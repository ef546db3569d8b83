package services

import (
	"context"
	"fmt"
	"io"

	"github.com/HSouheill/lostfound_backend/config"
	"gopkg.in/gomail.v2"
)

// InlineImage is attached to an email and referenced as cid:<Name>
type InlineImage struct {
	Name string
	Data []byte
}

// Email is a rendered HTML message
type Email struct {
	To      string
	Subject string
	HTML    string
	Images  []InlineImage
}

// Mailer delivers emails
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SMTPMailer sends through an SMTP relay
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	replyTo string
}

// NewMailer returns an SMTP mailer, or a DisabledMailer when no host is set
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return DisabledMailer{}
	}
	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:    cfg.EmailFrom,
		replyTo: cfg.EmailReplyTo,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	if m.replyTo != "" {
		msg.SetHeader("Reply-To", m.replyTo)
	}
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTML)

	for _, img := range email.Images {
		data := img.Data
		msg.Embed(img.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	// gomail has no context support; give up waiting once ctx is done
	errc := make(chan error, 1)
	go func() {
		errc <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DisabledMailer is used when SMTP is not configured
type DisabledMailer struct{}

func (DisabledMailer) Send(context.Context, Email) error {
	return newError(ErrUnavailable, "Email delivery is not configured")
}
