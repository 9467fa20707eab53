package status

import (
	"errors"
	"fmt"
)

var (
	ErrShopIDRequired = errors.New("analytics: shop id is required")
	ErrCacheMiss      = errors.New("cache: entry not found")
)

// OpError is the domain error surfaced by the analytics use cases. It names
// the failing operation, carries the input parameters that produced the
// failure and wraps the underlying cause.
type OpError struct {
	Op      string
	Message string
	Context map[string]any
	Err     error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError builds an OpError. ctx may be nil.
func NewOpError(op, message string, ctx map[string]any, cause error) *OpError {
	return &OpError{
		Op:      op,
		Message: message,
		Context: ctx,
		Err:     cause,
	}
}
