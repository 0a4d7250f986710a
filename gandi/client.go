/*
Package gandi is a minimal client for the slice of the Gandi LiveDNS v5 API
this program needs: replacing the A rrset of one record. Authentication is
the X-Api-Key header; every request carries a hard timeout.
*/
package gandi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the LiveDNS v5 endpoint.
	DefaultBaseURL = "https://dns.api.gandi.net/api/v5"

	// RecordTTL is applied to every record written. Short, because the whole
	// point of these records is that they move.
	RecordTTL = 300 // seconds

	requestTimeout = 15 * time.Second

	// How much of an error response body is worth quoting back.
	maxErrorBody = 2048
)

// ErrUnauthorized marks a 401/403 from the API. It will recur
// deterministically within a run, so callers may choose to report it once
// rather than hammer the API with doomed requests.
var ErrUnauthorized = errors.New("gandi: authentication rejected")

// rrset is the request (and response) shape of the LiveDNS records API.
// Requests only carry ttl and values.
type rrset struct {
	Type   string   `json:"rrset_type,omitempty"`
	TTL    int      `json:"rrset_ttl"`
	Name   string   `json:"rrset_name,omitempty"`
	Values []string `json:"rrset_values"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

// WithBaseURL points the client at a different endpoint, which is how the
// tests substitute an httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New creates a LiveDNS client authenticating with apiKey.
func New(apiKey string, logger zerolog.Logger, options ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
	for _, opt := range options {
		opt(c)
	}

	return c
}

// UpdateARecord replaces the A rrset of name under domain with the single
// value ip. The API addresses records by bare domain and bare label:
// a trailing dot on the domain or a dot inside the name is a caller bug,
// caught here before it turns into a confusing 404.
func (c *Client) UpdateARecord(ctx context.Context, domain, name, ip string) error {
	if strings.HasSuffix(domain, ".") {
		return errors.Errorf("gandi: domain %q must not end with '.'", domain)
	}
	if strings.Contains(name, ".") {
		return errors.Errorf("gandi: record name %q must not contain '.'", name)
	}

	body, err := json.Marshal(rrset{TTL: RecordTTL, Values: []string{ip}})
	if err != nil {
		return errors.Wrap(err, "gandi: encoding request")
	}

	url := c.baseURL + "/domains/" + domain + "/records/" + name + "/A"
	c.logger.Debug().Str("url", url).RawJSON("body", body).Msg("gandi request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "gandi: building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "gandi: PUT %s", url)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Wrapf(ErrUnauthorized, "PUT %s status %d", url, resp.StatusCode)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.Errorf("gandi: PUT %s failed with %d: %s",
			url, resp.StatusCode, strings.TrimSpace(string(text)))
	}

	c.logger.Info().Str("domain", domain).Str("name", name).Str("ip", ip).
		Msg("gandi update successful")

	return nil
}
