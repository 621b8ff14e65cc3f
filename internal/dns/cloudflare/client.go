// Package cloudflare is a thin client for the Cloudflare DNS records API.
// Every response envelope carries a success flag; success:false is treated as
// a provider failure regardless of HTTP status, with the provider's own error
// detail preserved verbatim.
package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// TTLAuto is the provider sentinel for automatic TTL.
const TTLAuto = 1

// Record is a DNS record as exposed by the provider API.
type Record struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

// ErrorDetail is one provider-side error entry.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError is returned when the provider reports success:false.
type APIError struct {
	Status int
	Errors []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("cloudflare: request failed (status %d)", e.Status)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		parts = append(parts, fmt.Sprintf("%d: %s", d.Code, d.Message))
	}
	return "cloudflare: " + strings.Join(parts, "; ")
}

type envelope struct {
	Success bool            `json:"success"`
	Errors  []ErrorDetail   `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

// Client talks to one DNS zone.
type Client struct {
	http   *resty.Client
	zoneID string
}

// Option adjusts the client, mainly for tests.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.http.SetBaseURL(u) }
}

// New creates a client authenticated with a bearer token against one zone.
func New(apiToken, zoneID string, opts ...Option) *Client {
	hc := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(30 * time.Second).
		SetAuthToken(apiToken).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{http: hc, zoneID: zoneID}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListCNAME returns all CNAME records in the zone whose name matches exactly.
func (c *Client) ListCNAME(ctx context.Context, name string) ([]Record, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"type": "CNAME", "name": name}).
		SetResult(&env).
		Get("/zones/" + c.zoneID + "/dns_records")
	if err != nil {
		return nil, fmt.Errorf("cloudflare: list records: %w", err)
	}
	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode(), Errors: env.Errors}
	}

	var records []Record
	if err := json.Unmarshal(env.Result, &records); err != nil {
		return nil, fmt.Errorf("cloudflare: decode list result: %w", err)
	}
	return records, nil
}

// Create adds a new record to the zone.
func (c *Client) Create(ctx context.Context, rec Record) (*Record, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(rec).
		SetResult(&env).
		Post("/zones/" + c.zoneID + "/dns_records")
	if err != nil {
		return nil, fmt.Errorf("cloudflare: create record: %w", err)
	}
	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode(), Errors: env.Errors}
	}
	return decodeRecord(env.Result)
}

// Update replaces an existing record in place.
func (c *Client) Update(ctx context.Context, id string, rec Record) (*Record, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(rec).
		SetResult(&env).
		Put("/zones/" + c.zoneID + "/dns_records/" + id)
	if err != nil {
		return nil, fmt.Errorf("cloudflare: update record: %w", err)
	}
	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode(), Errors: env.Errors}
	}
	return decodeRecord(env.Result)
}

func decodeRecord(raw json.RawMessage) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("cloudflare: decode record: %w", err)
	}
	return &rec, nil
}
