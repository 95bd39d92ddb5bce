package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/client/models"
	"github.com/dmitrijs2005/paytoken/internal/common"
	"github.com/google/uuid"
)

const maxResponseSize = 1 << 20

// GatewayClient calls the gateway HTTP API. Every call carries a fresh
// X-Request-Id so it can be matched against server logs.
type GatewayClient struct {
	baseURL string
	http    *http.Client
}

func NewGatewayClient(baseURL string, timeout time.Duration) *GatewayClient {
	return &GatewayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *GatewayClient) Pay(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResult, error) {
	var res models.PaymentResult
	if err := c.do(ctx, http.MethodPost, "/", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *GatewayClient) Order(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(id, 10), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *GatewayClient) Orders(ctx context.Context) ([]*models.Order, error) {
	var list []*models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *GatewayClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return mapStatus(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: malformed response: %w", ErrServer, err)
	}
	return nil
}

func mapStatus(code int, body []byte) error {
	var eb models.ErrorBody
	_ = json.Unmarshal(body, &eb)
	msg := eb.Message
	if msg == "" {
		msg = http.StatusText(code)
	}

	switch {
	case code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case code == http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrUpstream, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrServer, code, msg)
	}
}
