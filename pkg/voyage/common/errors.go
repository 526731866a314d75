package common

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/captain-sol/voyage-client/pkg/solana/captainsol"
)

// Sentinels for errors.Is against the typed errors below.
var (
	ErrValidation = errors.New("validation failed")
	ErrDerivation = errors.New("address derivation failed")
	ErrDecode     = errors.New("account decode failed")
	ErrSubmission = errors.New("transaction submission failed")
)

// ValidationError rejects caller input before an instruction is built.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DerivationError means no program address exists for a seed set. It is
// not recoverable by retrying with the same input.
type DerivationError struct {
	Address string
	Err     error
}

func NewDerivationError(address string, err error) error {
	return &DerivationError{Address: address, Err: err}
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("failed to derive %s address: %v", e.Address, e.Err)
}

func (e *DerivationError) Is(target error) bool {
	return target == ErrDerivation
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}

// DecodeError reports one account that could not be decoded. Listings log
// and skip these.
type DecodeError struct {
	Account ed25519.PublicKey
	Err     error
}

func NewDecodeError(account ed25519.PublicKey, err error) error {
	return &DecodeError{Account: account, Err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode account %s: %v", base58.Encode(e.Account), e.Err)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CustomErrorCoder is implemented by signer errors that carry the custom
// error code of a failed program instruction.
type CustomErrorCoder interface {
	CustomErrorCode() uint32
}

// SubmissionError wraps any failure between a built instruction and a
// returned signature. It is never retried automatically.
type SubmissionError struct {
	Action string
	Err    error
}

func NewSubmissionError(action string, err error) error {
	return &SubmissionError{Action: action, Err: err}
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to submit %s: %s", e.Action, e.Reason())
}

func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmission
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// ProgramError returns the campaign program error behind the failure, if
// the signer surfaced one.
func (e *SubmissionError) ProgramError() (captainsol.ProgramError, bool) {
	var programErr captainsol.ProgramError
	if errors.As(e.Err, &programErr) {
		return programErr, true
	}

	var coder CustomErrorCoder
	if errors.As(e.Err, &coder) {
		return captainsol.GetProgramError(coder.CustomErrorCode())
	}
	return 0, false
}

// Reason is a human readable cause, preferring a known program error message.
func (e *SubmissionError) Reason() string {
	if programErr, ok := e.ProgramError(); ok {
		return programErr.Error()
	}
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}
