package cmatch

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrInput is the kind of every rejected order book.
	ErrInput = errors.New("invalid order input")
	// ErrOracleAnomaly is the kind of a comparison result other than 0 or 1.
	ErrOracleAnomaly = errors.New("comparison oracle returned a non-binary value")
	// ErrCapability is the kind of every failure of the encryption backend.
	ErrCapability = errors.New("encryption capability failed")
	// ErrInvalidPolicy rejects a tie or fit policy the engine does not know.
	ErrInvalidPolicy = errors.New("unknown matching policy")

	// ErrEmptySide is the cause of an InputError for a side without orders.
	ErrEmptySide = errors.New("side has no orders")
	// ErrQuantityOutOfRange is the cause of an InputError for a quantity that
	// is not a valid plaintext.
	ErrQuantityOutOfRange = errors.New("quantity not below the plaintext modulus")
	// ErrAggregateOutOfRange is the cause of an InputError for the first order
	// whose running side total exceeds the comparison bound.
	ErrAggregateOutOfRange = errors.New("side total exceeds the comparison bound")
)

// InputError rejects an order book before anything is encrypted. Index is -1
// when the error concerns a whole side.
type InputError struct {
	Side     Side
	Index    int
	Quantity uint64
	Err      error
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s side: %v", e.Side, e.Err)
	}
	return fmt.Sprintf("%s order %d (%d): %v", e.Side, e.Index, e.Quantity, e.Err)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInput
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// OracleAnomalyError carries the value the oracle decrypted instead of a bit.
// Value is nil when the oracle returned no value at all.
type OracleAnomalyError struct {
	Value *big.Int
}

func (e *OracleAnomalyError) Error() string {
	return fmt.Sprintf("%v: %v", ErrOracleAnomaly, e.Value)
}

func (e *OracleAnomalyError) Is(target error) bool {
	return target == ErrOracleAnomaly
}

// CapabilityError wraps a backend failure with the operation it broke.
type CapabilityError struct {
	Op  string
	Err error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapability
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// capability wraps err as a CapabilityError unless it already carries a kind.
func capability(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCapability) || errors.Is(err, ErrOracleAnomaly) || errors.Is(err, ErrInput) {
		return errors.Wrap(err, op)
	}
	return &CapabilityError{Op: op, Err: err}
}
