package services

import "fmt"

// Stage is a step of the per-request payment state machine:
//
//	Received → Validating → Tokenizing → Persisting → Completed
//
// with Failed reachable from Validating, Tokenizing and Persisting.
type Stage int

const (
	StageReceived Stage = iota
	StageValidating
	StageTokenizing
	StagePersisting
	StageCompleted
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageReceived:
		return "received"
	case StageValidating:
		return "validating"
	case StageTokenizing:
		return "tokenizing"
	case StagePersisting:
		return "persisting"
	case StageCompleted:
		return "completed"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// PaymentError reports the stage at which a payment failed. Err wraps one of
// common.ErrValidation, common.ErrNetwork, common.ErrProtocol or
// common.ErrStorage.
type PaymentError struct {
	Stage Stage
	Err   error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed while %s: %v", e.Stage, e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
