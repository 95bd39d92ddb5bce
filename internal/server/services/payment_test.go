package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/common"
	"github.com/dmitrijs2005/paytoken/internal/logging"
	"github.com/dmitrijs2005/paytoken/internal/server/config"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPAN = "4111111111111111"

func newTestPaymentService(tok *fakeTokenizer, repo *fakeOrders) *PaymentService {
	cfg := &config.Config{VaultTimeout: time.Second, DatabaseTimeout: time.Second}
	return NewPaymentService(nil, &fakeRepoManager{orders: repo}, tok, cfg, logging.Nop{})
}

func validRequest() *models.PaymentRequest {
	return &models.PaymentRequest{CardNumber: testPAN, Expiration: "12/30", CV2: "123"}
}

func requireStage(t *testing.T, err error, stage Stage, kind error) {
	t.Helper()
	var pe *PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, stage, pe.Stage)
	assert.ErrorIs(t, err, kind)
	assert.NotContains(t, err.Error(), testPAN)
}

func TestPay_Success(t *testing.T) {
	tok := &fakeTokenizer{fn: func(context.Context, string) (string, error) { return "tok-7f3a", nil }}
	repo := &fakeOrders{nextID: 41}
	s := newTestPaymentService(tok, repo)

	resp, err := s.Pay(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.TransactionID)

	saved := repo.Saved()
	require.Len(t, saved, 1)
	assert.Equal(t, "tok-7f3a", saved[0].Token)
	assert.Equal(t, saved[0].CreatedAt, saved[0].UpdatedAt)
}

func TestPay_ValidationFailsBeforeAnyCall(t *testing.T) {
	cases := []struct {
		name string
		req  *models.PaymentRequest
	}{
		{"nil request", nil},
		{"missing card number", &models.PaymentRequest{Expiration: "12/30", CV2: "123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok := &fakeTokenizer{}
			repo := &fakeOrders{}
			s := newTestPaymentService(tok, repo)

			resp, err := s.Pay(context.Background(), tc.req)
			assert.Nil(t, resp)
			requireStage(t, err, StageValidating, common.ErrValidation)
			assert.Zero(t, tok.Calls())
			assert.Empty(t, repo.Saved())
		})
	}
}

func TestPay_ValidationMessageUsesJSONName(t *testing.T) {
	s := newTestPaymentService(&fakeTokenizer{}, &fakeOrders{})

	_, err := s.Pay(context.Background(), &models.PaymentRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card_number is required")
}

func TestPay_TokenizerFailures(t *testing.T) {
	cases := []struct {
		name string
		fn   func(ctx context.Context, pan string) (string, error)
		kind error
	}{
		{
			name: "protocol error",
			fn: func(context.Context, string) (string, error) {
				return "", fmt.Errorf("%w: vault returned response code 403", common.ErrProtocol)
			},
			kind: common.ErrProtocol,
		},
		{
			name: "network error",
			fn: func(context.Context, string) (string, error) {
				return "", fmt.Errorf("%w: connection refused", common.ErrNetwork)
			},
			kind: common.ErrNetwork,
		},
		{
			name: "unclassified error becomes network",
			fn: func(context.Context, string) (string, error) {
				return "", errors.New("boom")
			},
			kind: common.ErrNetwork,
		},
		{
			name: "empty token",
			fn:   func(context.Context, string) (string, error) { return "", nil },
			kind: common.ErrProtocol,
		},
		{
			name: "token echoes pan",
			fn:   func(_ context.Context, pan string) (string, error) { return pan, nil },
			kind: common.ErrProtocol,
		},
		{
			name: "token contains pan",
			fn:   func(_ context.Context, pan string) (string, error) { return "x" + pan + "y", nil },
			kind: common.ErrProtocol,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeOrders{}
			s := newTestPaymentService(&fakeTokenizer{fn: tc.fn}, repo)

			resp, err := s.Pay(context.Background(), validRequest())
			assert.Nil(t, resp)
			requireStage(t, err, StageTokenizing, tc.kind)
			assert.Empty(t, repo.Saved(), "nothing may be stored after a tokenizer failure")
		})
	}
}

func TestPay_TokenizerDeadline(t *testing.T) {
	tok := &fakeTokenizer{fn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", fmt.Errorf("%w: %w", common.ErrNetwork, ctx.Err())
	}}
	repo := &fakeOrders{}
	s := newTestPaymentService(tok, repo)
	s.tokenizeTimeout = 20 * time.Millisecond

	_, err := s.Pay(context.Background(), validRequest())
	requireStage(t, err, StageTokenizing, common.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, repo.Saved())
}

func TestPay_StorageFailure(t *testing.T) {
	tok := &fakeTokenizer{}
	repo := &fakeOrders{saveErr: errors.New("relation \"orders\" does not exist")}
	s := newTestPaymentService(tok, repo)

	resp, err := s.Pay(context.Background(), validRequest())
	assert.Nil(t, resp)
	requireStage(t, err, StagePersisting, common.ErrStorage)
	assert.Equal(t, 1, tok.Calls(), "the token was issued before the store failed")
}

func TestPay_StorageDeadline(t *testing.T) {
	repo := &fakeOrders{saveFn: func(ctx context.Context, _ string) (*models.Order, error) {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, ctx.Err())
	}}
	s := newTestPaymentService(&fakeTokenizer{}, repo)
	s.storeTimeout = 20 * time.Millisecond

	_, err := s.Pay(context.Background(), validRequest())
	requireStage(t, err, StagePersisting, common.ErrStorage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPay_NotIdempotent(t *testing.T) {
	tok := &fakeTokenizer{}
	repo := &fakeOrders{}
	s := newTestPaymentService(tok, repo)

	first, err := s.Pay(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := s.Pay(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
	assert.Equal(t, 2, tok.Calls())

	saved := repo.Saved()
	require.Len(t, saved, 2)
	assert.NotEqual(t, saved[0].Token, saved[1].Token)
}

func TestPay_StoredTokenRoundTrip(t *testing.T) {
	tok := &fakeTokenizer{fn: func(context.Context, string) (string, error) { return "tok-9c21", nil }}
	repo := &fakeOrders{}
	s := newTestPaymentService(tok, repo)
	orderSvc := NewOrderService(nil, &fakeRepoManager{orders: repo}, time.Second)

	resp, err := s.Pay(context.Background(), validRequest())
	require.NoError(t, err)

	o, err := orderSvc.Get(context.Background(), resp.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, "tok-9c21", o.Token)
	assert.NotContains(t, o.Token, testPAN)
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "tokenizing", StageTokenizing.String())
	assert.Equal(t, "failed", StageFailed.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}

func TestPaymentError_Unwrap(t *testing.T) {
	err := &PaymentError{Stage: StagePersisting, Err: fmt.Errorf("%w: timeout", common.ErrStorage)}
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, "payment failed while persisting: storage error: timeout", err.Error())
}
