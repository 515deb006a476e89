// Package authgate provides a client for the partner domain validation service
package authgate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/platform/logger"
)

const (
	defaultTimeout = 15 * time.Second
	defaultUA      = "resumeranker"
)

// Options configures the Client
type Options struct {
	// BaseURL is the full validation endpoint URL
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Decision is the outcome of a validation call
// Reason is only set when Authorized is false
type Decision struct {
	Authorized bool
	Reason     string
}

// Client posts recruiter emails to the validator and reads the verdict
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("authgate"),
	}
}

type validateRequest struct {
	Email string `json:"email"`
}

type validateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Validate asks the validator whether email belongs to an authorized domain
// an unreachable validator is an error, a negative verdict is not
func (c *Client) Validate(ctx context.Context, email string) (Decision, error) {
	body, err := json.Marshal(validateRequest{Email: email})
	if err != nil {
		return Decision{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "authgate marshal failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL, bytes.NewReader(body))
	if err != nil {
		return Decision{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "authgate new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Decision{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "domain validator unreachable")
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("authgate http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Decision{Reason: "domain validator rejected the request"}, nil
	}

	var out validateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return Decision{Reason: "domain validator returned an unreadable body"}, nil
	}
	if out.Status != "success" {
		reason := out.Message
		if reason == "" {
			reason = "domain not authorized"
		}
		return Decision{Reason: reason}, nil
	}
	return Decision{Authorized: true}, nil
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}
