// Package service renders and dispatches result mails over SMTP
package service

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/platform/logger"
	pstrings "resumeranker/internal/platform/strings"
	"resumeranker/internal/services/api/mailer/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

const defaultSubject = "Resume ranking results"

// Sender delivers a rendered message, injectable for tests
// the default uses net/smtp with PLAIN auth
type Sender func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Options configure the service
type Options struct {
	// SMTPAddr is host:port of the relay
	SMTPAddr string

	// User and Pass authenticate against the relay, User is also the From address
	User string
	Pass string

	// Missing lists required settings absent from the environment
	Missing []string

	Sender Sender
}

// Svc implements the service port
type Svc struct {
	opts Options
	send Sender
	log  logger.Logger
}

// New constructs the service
func New(opts Options) *Svc {
	send := opts.Sender
	if send == nil {
		send = smtp.SendMail
	}
	return &Svc{opts: opts, send: send, log: *logger.Named("mailer")}
}

// Send renders the candidate blocks into an HTML body and dispatches it
// delivery failure surfaces the transport error message verbatim
func (s *Svc) Send(ctx context.Context, req domain.MailRequest) (domain.MailReceipt, error) {
	if len(s.opts.Missing) > 0 {
		return domain.MailReceipt{}, perr.Configf(
			"mail dispatch not configured, missing: %s", strings.Join(s.opts.Missing, ", "))
	}

	subject := pstrings.OrDefault(req.Subject, defaultSubject)
	msg := render(s.opts.User, req.To, subject, req.Results)

	host := s.opts.SMTPAddr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	auth := smtp.PlainAuth("", s.opts.User, s.opts.Pass, host)

	if err := s.send(s.opts.SMTPAddr, auth, s.opts.User, []string{req.To}, msg); err != nil {
		s.log.Warn().Err(err).Str("to", req.To).Msg("mail dispatch failed")
		return domain.MailReceipt{}, perr.Wrap(err, perr.ErrorCodeUpstream, err.Error())
	}

	s.log.Info().Str("to", req.To).Int("results", len(req.Results)).Msg("mail dispatched")
	return domain.MailReceipt{Message: "Email sent!"}, nil
}

// render builds the raw SMTP message with an HTML body
// each candidate contributes one block separated by a horizontal rule
func render(from, to, subject string, results []domain.CandidateResult) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")

	for _, r := range results {
		fmt.Fprintf(&b, "<p><b>%s</b> - Score: %g</p>", html.EscapeString(r.Name), r.Score)
		if r.Email != "" {
			fmt.Fprintf(&b, "<p>Email: %s</p>", html.EscapeString(r.Email))
		}
		if r.Phone != "" {
			fmt.Fprintf(&b, "<p>Phone: %s</p>", html.EscapeString(r.Phone))
		}
		if r.Justification != "" {
			fmt.Fprintf(&b, "<p>Justification: %s</p>", html.EscapeString(r.Justification))
		}
		b.WriteString("<hr/>")
	}
	return []byte(b.String())
}
