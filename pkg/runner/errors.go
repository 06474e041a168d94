package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrEmitterRequired is returned when a Runner has no Emitter to call.
	ErrEmitterRequired = errors.New("runner: emitter is required")
	// ErrRouterRequired is returned when an enabled Runner renders without an
	// output router.
	ErrRouterRequired = errors.New("runner: output router is required")
)

// TransformationError marks an expected, user-reportable failure such as a
// missing parameter or malformed input. Transform converts it into an Error
// diagnostic instead of returning it. Any other error is treated as a defect
// and returned unchanged.
type TransformationError struct {
	Message string
	Err     error
}

func (e *TransformationError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "transformation failed"
	}
}

func (e *TransformationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Failf builds a TransformationError from a format string.
func Failf(format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &TransformationError{Message: msg}
}

// Fail wraps err as a TransformationError. A nil err returns nil and an err
// that already is one is returned as is.
func Fail(err error) error {
	if err == nil {
		return nil
	}
	var te *TransformationError
	if errors.As(err, &te) {
		return err
	}
	return &TransformationError{Message: err.Error(), Err: err}
}

// IsTransformationError reports whether err carries a TransformationError.
func IsTransformationError(err error) bool {
	var te *TransformationError
	return errors.As(err, &te)
}

func transformationMessage(err error) string {
	var te *TransformationError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}
