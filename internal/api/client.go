// Package api talks to the office server: company database download,
// delivery dataset download, and purchase order upload. Endpoint URLs
// are configured per call because the driver can change them in
// settings at any time.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JDODER260/pickupform/internal/companydb"
	"github.com/JDODER260/pickupform/internal/delivery"
	"github.com/JDODER260/pickupform/internal/porecord"
)

// Fetcher defines the server operations the rest of the app depends
// on. Implemented by *Client and by test fakes.
type Fetcher interface {
	FetchCompanyDB(ctx context.Context, endpoint string) (companydb.Database, error)
	FetchDeliveries(ctx context.Context, endpoint, route string) (delivery.Dataset, error)
	UploadEntries(ctx context.Context, endpoint string, entries []porecord.Entry) error
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	defaultUserAgent = "pickup/0.1"

	// Database pulls are small; delivery downloads and uploads run
	// over mobile data in the field and get a longer leash.
	companyDBTimeout = 10 * time.Second
	deliveryTimeout  = 30 * time.Second
	uploadTimeout    = 30 * time.Second
)

// Client is the HTTP client for the office server.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a Client. Timeouts are applied per request, not on
// the underlying http.Client, because the endpoints differ.
func NewClient() *Client {
	return &Client{
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
}

// ServerError is a response the server produced on purpose: a non-200
// status or an explicit success=false payload.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error: %s", e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// MalformedError is a 200 response whose body does not have the shape
// the app expects. Distinct from ServerError so the UI can tell the
// driver "server said no" apart from "server is broken".
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

// FetchCompanyDB downloads the full route/company/blade snapshot and
// converts it to the local database form.
func (c *Client) FetchCompanyDB(ctx context.Context, endpoint string) (companydb.Database, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, companyDBTimeout)
	defer cancel()

	var snapshot companydb.RemoteSnapshot
	if err := c.getJSON(ctx, endpoint, &snapshot); err != nil {
		return nil, err
	}
	return companydb.Convert(snapshot), nil
}

// deliveryResponse is the wire envelope for delivery downloads. Data
// is decoded in a second pass so a wrong-shaped field can be reported
// precisely.
type deliveryResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// FetchDeliveries downloads the outstanding deliveries for one route.
func (c *Client) FetchDeliveries(ctx context.Context, endpoint, route string) (delivery.Dataset, error) {
	if c == nil {
		return delivery.Dataset{}, fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	reqURL, err := withRouteParam(endpoint, route)
	if err != nil {
		return delivery.Dataset{}, err
	}

	var payload deliveryResponse
	if err := c.getJSON(ctx, reqURL, &payload); err != nil {
		return delivery.Dataset{}, err
	}
	if !payload.Success {
		msg := payload.Error
		if msg == "" {
			msg = "download rejected"
		}
		return delivery.Dataset{}, &ServerError{Status: http.StatusOK, Message: msg}
	}
	if len(payload.Data) == 0 || string(payload.Data) == "null" {
		return delivery.Dataset{}, &MalformedError{Reason: "missing data field"}
	}
	var companies map[string][]delivery.Item
	if err := json.Unmarshal(payload.Data, &companies); err != nil {
		return delivery.Dataset{}, &MalformedError{Reason: "data field is not a company map"}
	}
	return delivery.Dataset{
		Route:     route,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Companies: companies,
	}, nil
}

// UploadEntries posts the given purchase orders to the server. The
// caller normalizes entries before upload; this method only sends.
func (c *Client) UploadEntries(ctx context.Context, endpoint string, entries []porecord.Entry) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	body, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &ServerError{Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &ServerError{Status: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &MalformedError{Reason: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func withRouteParam(endpoint, route string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	values := u.Query()
	values.Set("route", route)
	u.RawQuery = values.Encode()
	return u.String(), nil
}
