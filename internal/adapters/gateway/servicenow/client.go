// Package servicenow provides a minimal ServiceNow Table API client
package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/platform/logger"
)

const (
	defaultTimeout = 30 * time.Second
	defaultUA      = "resumeranker"
)

// Options configures the Client
type Options struct {
	// InstanceURL is the instance root, e.g. https://acme.service-now.com
	InstanceURL string
	Username    string
	Password    string
	UserAgent   string
	Timeout     time.Duration
}

// Record is one table row as returned by the Table API
type Record map[string]any

// WriteResult is the subset of a create or update response we care about
type WriteResult struct {
	SysID  string
	Number string
}

// Client talks to the ServiceNow Table API with basic auth
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
		log:  *logger.Named("servicenow"),
	}
}

// Query runs an encoded sysparm_query against table, capped at limit rows
// failures surface as lookup errors so callers can abort before writing
func (c *Client) Query(ctx context.Context, table, query string, limit int) ([]Record, error) {
	u := c.opts.InstanceURL + "/api/now/table/" + url.PathEscape(table) +
		"?sysparm_query=" + url.QueryEscape(query) +
		"&sysparm_limit=" + strconv.Itoa(limit)

	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeLookup, "servicenow query transport failed")
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, perr.Lookupf(resp.StatusCode, "servicenow lookup failed: %s", readAPIError(resp.Body))
	}

	var out struct {
		Result []Record `json:"result"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeLookup, "servicenow query decode failed")
	}
	return out.Result, nil
}

// Create inserts a new row into table
func (c *Client) Create(ctx context.Context, table string, fields map[string]string) (WriteResult, error) {
	u := c.opts.InstanceURL + "/api/now/table/" + url.PathEscape(table)
	return c.write(ctx, http.MethodPost, u, fields)
}

// Update replaces fields on the row identified by sysID
func (c *Client) Update(ctx context.Context, table, sysID string, fields map[string]string) (WriteResult, error) {
	u := c.opts.InstanceURL + "/api/now/table/" + url.PathEscape(table) + "/" + url.PathEscape(sysID)
	return c.write(ctx, http.MethodPut, u, fields)
}

func (c *Client) write(ctx context.Context, method, u string, fields map[string]string) (WriteResult, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return WriteResult{}, perr.Wrapf(err, perr.ErrorCodeSync, "servicenow marshal failed")
	}

	resp, err := c.do(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return WriteResult{}, perr.Wrapf(err, perr.ErrorCodeSync, "servicenow write transport failed")
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return WriteResult{}, perr.Syncf(resp.StatusCode, "servicenow write failed: %s", readAPIError(resp.Body))
	}

	var out struct {
		Result struct {
			SysID  string `json:"sys_id"`
			Number string `json:"number"`
		} `json:"result"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return WriteResult{}, perr.Wrapf(err, perr.ErrorCodeSync, "servicenow write decode failed")
	}
	return WriteResult{SysID: out.Result.SysID, Number: out.Result.Number}, nil
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.opts.Username, c.opts.Password)
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("servicenow http response")
	return resp, nil
}

// readAPIError pulls error.message out of a failed Table API response body
// falls back to a small raw tail when the body is not the usual shape
func readAPIError(rc io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(rc, 2048))
	var body struct {
		Error struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return string(raw)
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}
