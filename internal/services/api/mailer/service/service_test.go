package service

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/services/api/mailer/domain"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func captureSender(got *capturedMail, err error) Sender {
	return func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*got = capturedMail{addr: addr, from: from, to: to, msg: string(msg)}
		return err
	}
}

func TestSend_RendersCandidateBlocks(t *testing.T) {
	var got capturedMail
	s := New(Options{
		SMTPAddr: "smtp.example.com:587",
		User:     "ranker@example.com",
		Pass:     "secret",
		Sender:   captureSender(&got, nil),
	})

	rec, err := s.Send(context.Background(), domain.MailRequest{
		To: "hiring@example.com",
		Results: []domain.CandidateResult{
			{Name: "Ada Lovelace", Score: 92.5, Email: "ada@example.com", Phone: "+1 555 0100", Justification: "Strong match"},
			{Name: "Grace <Hopper>", Score: 88},
		},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if rec.Message != "Email sent!" {
		t.Fatalf("receipt = %+v", rec)
	}
	if got.addr != "smtp.example.com:587" || got.from != "ranker@example.com" {
		t.Fatalf("relay call = %+v", got)
	}
	if len(got.to) != 1 || got.to[0] != "hiring@example.com" {
		t.Fatalf("recipients = %v", got.to)
	}

	for _, want := range []string{
		"Subject: Resume ranking results",
		"<p><b>Ada Lovelace</b> - Score: 92.5</p>",
		"<p>Email: ada@example.com</p>",
		"<p>Phone: +1 555 0100</p>",
		"<p>Justification: Strong match</p>",
		"<p><b>Grace &lt;Hopper&gt;</b> - Score: 88</p>",
		"<hr/>",
	} {
		if !strings.Contains(got.msg, want) {
			t.Fatalf("body missing %q\n%s", want, got.msg)
		}
	}
	// optional fields absent from the second block
	if strings.Count(got.msg, "<p>Phone:") != 1 {
		t.Fatalf("phone rendered for a candidate without one")
	}
}

func TestSend_SubjectOverride(t *testing.T) {
	var got capturedMail
	s := New(Options{SMTPAddr: "smtp.example.com:587", User: "u@example.com", Sender: captureSender(&got, nil)})

	_, err := s.Send(context.Background(), domain.MailRequest{
		To:      "x@example.com",
		Subject: "Top 3 candidates",
		Results: []domain.CandidateResult{{Name: "A", Score: 1}},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(got.msg, "Subject: Top 3 candidates") {
		t.Fatal("custom subject not applied")
	}
}

func TestSend_TransportErrorSurfacesVerbatim(t *testing.T) {
	var got capturedMail
	s := New(Options{
		SMTPAddr: "smtp.example.com:587",
		User:     "u@example.com",
		Sender:   captureSender(&got, errors.New("535 authentication failed")),
	})

	_, err := s.Send(context.Background(), domain.MailRequest{
		To:      "x@example.com",
		Results: []domain.CandidateResult{{Name: "A", Score: 1}},
	})
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(perr.WireFrom(err).Message, "535 authentication failed") {
		t.Fatalf("transport message lost: %v", err)
	}
}

func TestSend_MissingCredentialsIsConfigurationError(t *testing.T) {
	called := false
	s := New(Options{
		Missing: []string{"EMAIL_USER", "EMAIL_PASS"},
		Sender: func(string, smtp.Auth, string, []string, []byte) error {
			called = true
			return nil
		},
	})

	_, err := s.Send(context.Background(), domain.MailRequest{
		To:      "x@example.com",
		Results: []domain.CandidateResult{{Name: "A", Score: 1}},
	})
	if !perr.IsCode(err, perr.ErrorCodeConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(perr.WireFrom(err).Message, "EMAIL_USER") {
		t.Fatalf("error should name missing settings: %v", err)
	}
	if called {
		t.Fatal("sender ran without credentials")
	}
}
