// Package agentic provides a client for the agentic resume scoring service
package agentic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/platform/logger"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUA        = "resumeranker"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond

	// WorkflowID identifies the ranking workflow on the scoring side
	WorkflowID = "resume_ranker"
)

// Options configures the Client
type Options struct {
	// BaseURL is the full scoring endpoint URL
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient server side responses
	MaxRetries int
	RetryBase  time.Duration
}

// Payload is the JSON "data" field of the multipart submission
type Payload struct {
	OrgID          int    `json:"org_id"`
	JobTitle       string `json:"job_title"`
	ExeName        string `json:"exe_name"`
	WorkflowID     string `json:"workflow_id"`
	JobDescription string `json:"job_description"`
}

// Resume is one uploaded resume forwarded verbatim
type Resume struct {
	Filename string
	Content  []byte
}

// Result is the scoring outcome
// Raw is the full data payload, callers own further interpretation
type Result struct {
	StatusCode int
	CaseID     string
	Raw        json.RawMessage
}

// Client submits multipart scoring requests with retry on transient failures
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("agentic"),
		sleep: time.Sleep,
	}
}

// Submit posts the payload and resumes as one multipart request
// resumes are written in slice order so scores line up with candidates
func (c *Client) Submit(ctx context.Context, p Payload, resumes []Resume) (Result, error) {
	if p.WorkflowID == "" {
		p.WorkflowID = WorkflowID
	}
	data, err := json.Marshal(p)
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "agentic marshal failed")
	}

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		body, contentType, err := encodeMultipart(data, resumes)
		if err != nil {
			return Result{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "agentic multipart encode failed")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL, body)
		if err != nil {
			return Result{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "agentic new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Content-Type", contentType)

		start := time.Now()
		resp, err := c.http.Do(req)
		lat := time.Since(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "scoring service unreachable")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("agentic transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Int("resumes", len(resumes)).
			Dur("latency", lat).
			Msg("agentic http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode <= 299:
			raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
			_ = resp.Body.Close()
			if err != nil {
				return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "agentic read body failed")
			}
			return decodeResult(resp.StatusCode, raw)
		case resp.StatusCode == http.StatusBadGateway,
			resp.StatusCode == http.StatusServiceUnavailable,
			resp.StatusCode == http.StatusGatewayTimeout:
			// transient server side
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return Result{}, perr.Upstreamf(resp.StatusCode, "scoring service transient error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("agentic transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return Result{}, perr.Upstreamf(resp.StatusCode, "scoring service returned %d: %s", resp.StatusCode, string(tail))
		}
	}
}

// decodeResult pulls the case id out of the {data:{id,...}} envelope
// the data payload is kept raw so downstream sync can persist it verbatim
func decodeResult(status int, raw []byte) (Result, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Data) == 0 {
		return Result{}, perr.Upstreamf(status, "scoring response missing data payload")
	}
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.ID == "" {
		return Result{}, perr.Upstreamf(status, "scoring response missing case id")
	}
	return Result{StatusCode: status, CaseID: data.ID, Raw: env.Data}, nil
}

// encodeMultipart builds a fresh request body, safe to call per retry attempt
func encodeMultipart(data []byte, resumes []Resume) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("data", string(data)); err != nil {
		return nil, "", err
	}
	for _, r := range resumes {
		part, err := w.CreateFormFile("resumes", r.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(r.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}
