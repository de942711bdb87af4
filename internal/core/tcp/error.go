package tcp

import (
	"errors"
	"fmt"
)

const TCP = "tcp"

var ErrTimeout = errors.New("operation timeout")

type ConnectionError struct {
	Op          string
	Err         error
	IsRetryable bool
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func wrapError(op string, err error, retryable bool) error {
	return &ConnectionError{
		Op:          op,
		Err:         err,
		IsRetryable: retryable,
	}
}
