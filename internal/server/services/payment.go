// Package services contains the gateway's business logic: orchestrating a
// payment, aggregating health and reading back orders.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/common"
	"github.com/dmitrijs2005/paytoken/internal/dbx"
	"github.com/dmitrijs2005/paytoken/internal/logging"
	"github.com/dmitrijs2005/paytoken/internal/server/config"
	"github.com/dmitrijs2005/paytoken/internal/server/models"
	"github.com/dmitrijs2005/paytoken/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// Tokenizer exchanges a PAN for an opaque token. vault.Client implements it.
type Tokenizer interface {
	Tokenize(ctx context.Context, pan string) (string, error)
}

// PaymentService runs one payment end to end: validate, tokenize, persist,
// respond. It holds no per-request state and is safe for concurrent use.
//
// Pay is not idempotent: the same card twice yields two tokens and two orders.
type PaymentService struct {
	db              dbx.Conn
	repomanager     repomanager.RepositoryManager
	tokenizer       Tokenizer
	validate        *validator.Validate
	logger          logging.Logger
	tokenizeTimeout time.Duration
	storeTimeout    time.Duration
}

// NewPaymentService constructs a PaymentService using the repositories,
// tokenizer and timeouts from the server config.
func NewPaymentService(db dbx.Conn, m repomanager.RepositoryManager, t Tokenizer, cfg *config.Config, logger logging.Logger) *PaymentService {
	return &PaymentService{
		db:              db,
		repomanager:     m,
		tokenizer:       t,
		validate:        newValidator(),
		logger:          logger.With("module", "payment_service"),
		tokenizeTimeout: cfg.VaultTimeout,
		storeTimeout:    cfg.DatabaseTimeout,
	}
}

// Pay tokenizes req.CardNumber and stores the token as a new order.
//
// On failure it returns a *PaymentError. A tokenization failure means
// nothing was stored; a storage failure discards the already issued token.
func (s *PaymentService) Pay(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	if req == nil {
		return nil, s.fail(ctx, StageValidating, fmt.Errorf("%w: empty request", common.ErrValidation))
	}

	s.logger.Debug(ctx, "Payment received", "stage", StageReceived)

	if err := s.validateRequest(req); err != nil {
		return nil, s.fail(ctx, StageValidating, err)
	}

	token, err := s.tokenize(ctx, req.CardNumber)
	if err != nil {
		return nil, s.fail(ctx, StageTokenizing, err)
	}

	order, err := s.persist(ctx, token)
	if err != nil {
		return nil, s.fail(ctx, StagePersisting, err)
	}

	s.logger.Info(ctx, "Payment completed", "stage", StageCompleted, "transaction_id", order.ID)
	return &models.PaymentResponse{TransactionID: order.ID}, nil
}

func (s *PaymentService) validateRequest(req *models.PaymentRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return validationError(err)
	}
	return nil
}

func (s *PaymentService) tokenize(ctx context.Context, pan string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.tokenizeTimeout)
	defer cancel()

	token, err := s.tokenizer.Tokenize(ctx, pan)
	if err != nil {
		if !errors.Is(err, common.ErrNetwork) && !errors.Is(err, common.ErrProtocol) {
			err = fmt.Errorf("%w: %w", common.ErrNetwork, err)
		}
		return "", err
	}

	// A token must never reveal the PAN, whatever the engine returned.
	if token == "" || strings.Contains(token, pan) {
		return "", fmt.Errorf("%w: tokenizer returned an unusable token", common.ErrProtocol)
	}
	return token, nil
}

func (s *PaymentService) persist(ctx context.Context, token string) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()

	order, err := s.repomanager.Orders(s.db).Save(ctx, token)
	if err != nil {
		if !errors.Is(err, common.ErrStorage) {
			err = fmt.Errorf("%w: %w", common.ErrStorage, err)
		}
		return nil, err
	}
	return order, nil
}

func (s *PaymentService) fail(ctx context.Context, stage Stage, err error) error {
	s.logger.Warn(ctx, "Payment failed", "stage", stage, "error", err)
	return &PaymentError{Stage: stage, Err: err}
}

// withTimeout applies d unless it is zero.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
