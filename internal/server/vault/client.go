// Package vault is the only path by which cardholder data leaves the
// process. It exchanges a PAN for an opaque token through the Vault
// Transform secrets engine and probes Vault liveness.
package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/common"
)

// Client talks to one Vault address with one static token. It is immutable
// after construction and safe for concurrent use.
type Client struct {
	token   string
	address string
	role    string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRole sets the Transform role used for encoding. Defaults to "payments".
func WithRole(role string) Option {
	return func(c *Client) { c.role = role }
}

// NewClient creates a new Vault client for the given token and server address.
func NewClient(token, address string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		address: strings.TrimRight(address, "/"),
		role:    "payments",
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokenize sends pan to the Transform encode endpoint and returns the
// encoded value.
//
// Errors wrap common.ErrNetwork when Vault cannot be reached or ctx expires,
// and common.ErrProtocol for any non-200 status, an unparseable body or an
// empty encoded value. Errors never include the PAN.
func (c *Client) Tokenize(ctx context.Context, pan string) (string, error) {
	body, err := json.Marshal(encodeRequest{Value: pan})
	if err != nil {
		return "", fmt.Errorf("%w: unable to encode request", common.ErrProtocol)
	}

	endpoint := c.address + fmt.Sprintf(encodePathFormat, url.PathEscape(c.role))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: invalid vault address: %v", common.ErrNetwork, err)
	}
	req.Header.Set(common.VaultTokenHeaderName, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: vault returned response code %d, expected status code 200", common.ErrProtocol, resp.StatusCode)
	}

	out := &encodeResponse{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return "", fmt.Errorf("%w: unable to decode vault response: %v", common.ErrProtocol, err)
	}
	if out.Data == nil || out.Data.EncodedValue == "" {
		return "", fmt.Errorf("%w: vault response has no encoded value", common.ErrProtocol)
	}

	return out.Data.EncodedValue, nil
}

// IsHealthy returns true when Vault answers its health endpoint with 200,
// meaning it is initialized, unsealed and active. Every other outcome,
// including transport failures, is false.
func (c *Client) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.address+healthPath, nil)
	if err != nil {
		return false
	}
	req.Header.Set(common.VaultTokenHeaderName, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer drainAndClose(resp.Body)

	return resp.StatusCode == http.StatusOK
}

// drainAndClose lets the transport reuse the connection.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxResponseSize))
	_ = body.Close()
}
