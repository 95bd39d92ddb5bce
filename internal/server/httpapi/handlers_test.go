package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/common"
	"github.com/dmitrijs2005/paytoken/internal/logging"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"github.com/dmitrijs2005/paytoken/internal/server/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPAN = "4111111111111111"

type fakePayer struct {
	got  *models.PaymentRequest
	resp *models.PaymentResponse
	err  error
}

func (f *fakePayer) Pay(_ context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	f.got = req
	return f.resp, f.err
}

type fakeHealth models.HealthStatus

func (f fakeHealth) Health(context.Context) models.HealthStatus { return models.HealthStatus(f) }

type fakeOrders struct {
	orders []*models.Order
	err    error
}

func (f *fakeOrders) Get(_ context.Context, id int64) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeOrders) List(context.Context) ([]*models.Order, error) {
	return f.orders, f.err
}

func newTestRouter(p Payer, h HealthReporter, o OrderReader, logBuf *bytes.Buffer) http.Handler {
	var logger logging.Logger = logging.Nop{}
	if logBuf != nil {
		logger = logging.NewJSONLogger(logBuf, slog.LevelDebug)
	}
	return NewRouter(logger, p, h, o)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestPayment_Success(t *testing.T) {
	p := &fakePayer{resp: &models.PaymentResponse{TransactionID: 42}}
	h := newTestRouter(p, fakeHealth{}, &fakeOrders{}, nil)

	rec := do(t, h, http.MethodPost, "/", `{"card_number":"`+testPAN+`","expiration":"12/30","cv2":"123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"transaction_id":42}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotNil(t, p.got)
	assert.Equal(t, testPAN, p.got.CardNumber)
	assert.Equal(t, "12/30", p.got.Expiration)
	assert.Equal(t, "123", p.got.CV2)
}

func TestPayment_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     &services.PaymentError{Stage: services.StageValidating, Err: fmt.Errorf("%w: card_number is required", common.ErrValidation)},
			status:  http.StatusBadRequest,
			message: "validation error: card_number is required",
		},
		{
			name:    "protocol",
			err:     &services.PaymentError{Stage: services.StageTokenizing, Err: fmt.Errorf("%w: vault returned response code 403", common.ErrProtocol)},
			status:  http.StatusBadGateway,
			message: "unable to tokenize card",
		},
		{
			name:    "network",
			err:     &services.PaymentError{Stage: services.StageTokenizing, Err: fmt.Errorf("%w: connection refused", common.ErrNetwork)},
			status:  http.StatusBadGateway,
			message: "unable to tokenize card",
		},
		{
			name:    "storage",
			err:     &services.PaymentError{Stage: services.StagePersisting, Err: fmt.Errorf("%w: relation does not exist", common.ErrStorage)},
			status:  http.StatusInternalServerError,
			message: "storage unavailable",
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "internal error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(&fakePayer{err: tc.err}, fakeHealth{}, &fakeOrders{}, nil)

			rec := do(t, h, http.MethodPost, "/", `{"card_number":"`+testPAN+`"}`)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.message, decodeMessage(t, rec))
			assert.NotContains(t, rec.Body.String(), testPAN)
		})
	}
}

func TestPayment_UndecodableBody(t *testing.T) {
	for _, body := range []string{"", "not json", `{"card_number":`, `["x"]`} {
		t.Run(body, func(t *testing.T) {
			p := &fakePayer{}
			h := newTestRouter(p, fakeHealth{}, &fakeOrders{}, nil)

			rec := do(t, h, http.MethodPost, "/", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "unable to parse request", decodeMessage(t, rec))
			assert.Nil(t, p.got)
		})
	}
}

func TestPayment_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(&fakePayer{}, fakeHealth{}, &fakeOrders{}, nil)

	rec := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPayment_PANNeverLogged(t *testing.T) {
	var logs bytes.Buffer
	err := &services.PaymentError{
		Stage: services.StageTokenizing,
		Err:   fmt.Errorf("%w: upstream echoed %s", common.ErrProtocol, testPAN),
	}
	h := newTestRouter(&fakePayer{err: err}, fakeHealth{}, &fakeOrders{}, &logs)

	rec := do(t, h, http.MethodPost, "/", `{"card_number":"`+testPAN+`"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotEmpty(t, logs.String())
	assert.NotContains(t, logs.String(), testPAN)
	assert.NotContains(t, rec.Body.String(), testPAN)
}

func TestHealth_AlwaysOK(t *testing.T) {
	cases := []models.HealthStatus{
		{Vault: models.StatusOK, DB: models.StatusOK},
		{Vault: models.StatusFail, DB: models.StatusOK},
		{Vault: models.StatusOK, DB: models.StatusFail},
		{Vault: models.StatusFail, DB: models.StatusFail},
	}

	for _, hs := range cases {
		t.Run(string(hs.Vault)+"/"+string(hs.DB), func(t *testing.T) {
			h := newTestRouter(&fakePayer{}, fakeHealth(hs), &fakeOrders{}, nil)

			rec := do(t, h, http.MethodGet, "/health", "")

			assert.Equal(t, http.StatusOK, rec.Code)
			want := fmt.Sprintf(`{"vault":%q,"db":%q}`, hs.Vault, hs.DB)
			assert.JSONEq(t, want, rec.Body.String())
		})
	}
}

func TestOrders_List(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	o := &fakeOrders{orders: []*models.Order{
		{ID: 1, Token: "tok-1", CreatedAt: ts, UpdatedAt: ts},
		{ID: 2, Token: "tok-2", CreatedAt: ts, UpdatedAt: ts},
	}}
	h := newTestRouter(&fakePayer{}, fakeHealth{}, o, nil)

	rec := do(t, h, http.MethodGet, "/orders", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "tok-2", got[1].Token)
	assert.Nil(t, got[0].DeletedAt)
}

func TestOrders_Get(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	o := &fakeOrders{orders: []*models.Order{{ID: 7, Token: "tok-7", CreatedAt: ts, UpdatedAt: ts}}}
	h := newTestRouter(&fakePayer{}, fakeHealth{}, o, nil)

	cases := []struct {
		target string
		status int
	}{
		{"/orders/7", http.StatusOK},
		{"/orders/8", http.StatusNotFound},
		{"/orders/abc", http.StatusBadRequest},
		{"/orders/0", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestOrders_StorageError(t *testing.T) {
	o := &fakeOrders{err: fmt.Errorf("%w: conn reset", common.ErrStorage)}
	h := newTestRouter(&fakePayer{}, fakeHealth{}, o, nil)

	rec := do(t, h, http.MethodGet, "/orders", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "storage unavailable", decodeMessage(t, rec))
}

func TestRequestID(t *testing.T) {
	h := newTestRouter(&fakePayer{}, fakeHealth{}, &fakeOrders{}, nil)

	rec := do(t, h, http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get(common.RequestIDHeaderName))
	assert.NoError(t, err)

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(common.RequestIDHeaderName, inbound)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, inbound, rec.Header().Get(common.RequestIDHeaderName))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(common.RequestIDHeaderName, "<script>")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "<script>", rec.Header().Get(common.RequestIDHeaderName))
}

type panickingHealth struct{}

func (panickingHealth) Health(context.Context) models.HealthStatus { panic("kaboom") }

func TestRecoverMiddleware(t *testing.T) {
	var logs bytes.Buffer
	h := newTestRouter(&fakePayer{}, panickingHealth{}, &fakeOrders{}, &logs)

	rec := do(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "Handler panicked")
	assert.Contains(t, logs.String(), `"status":500`)
}
