// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client shared by every Crossref request
// of a run, and the error returned for non-success responses.
package httputil

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/juanvillada/givelit/pkg/types"
)

// DefaultTimeout is the per-request timeout when the config leaves it unset.
const DefaultTimeout = 15 * time.Second

const maxSnippetLen = 512

// NewClient returns a resty client with the configured timeout and the
// identifying headers Crossref asks API users to send. Retries stay disabled:
// each journal gets exactly one request.
func NewClient(cfg types.HTTPConfig) *resty.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetRetryCount(0)
	c.SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}
	return c
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}

// CheckResponse returns a *StatusError when resp is not a 2xx response.
func CheckResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	url := ""
	if resp.Request != nil {
		url = resp.Request.URL
	}
	return &StatusError{
		URL:        url,
		StatusCode: resp.StatusCode(),
		Body:       Snippet(resp.Body()),
	}
}

// Snippet trims a response body for inclusion in an error message. Whitespace
// runs collapse to single spaces so the message stays on one line.
func Snippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxSnippetLen {
		return s[:maxSnippetLen] + "..."
	}
	return s
}
