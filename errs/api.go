package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrBadRequest       = errors.New("malformed request")
	ErrInternal         = errors.New("internal server error")
	ErrValidationFailed = errors.New("validation failed")
	ErrCORSBlocked      = errors.New("request blocked by CORS policy")
)

type ApiErr struct {
	StatusCode int
	err        error
	message    string   // User-facing message, defaults to err.Error()
	Errors     []string // Every violation message (validation errors only)
	Cause      error    // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// newSentinelErr builds an ApiErr that matches sentinel with errors.Is but
// reports message to the caller.
func newSentinelErr(statusCode int, sentinel error, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        sentinel,
		message:    message,
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// WithCause attaches the underlying error for logging.
func (e *ApiErr) WithCause(cause error) *ApiErr {
	e.Cause = cause
	return e
}

func NewBadRequestError(message string) *ApiErr {
	return newSentinelErr(http.StatusBadRequest, ErrBadRequest, message)
}

func NewInternalError(message string) *ApiErr {
	return newSentinelErr(http.StatusInternalServerError, ErrInternal, message)
}

// NewValidationError reports every violation found in a request payload.
func NewValidationError(messages []string) *ApiErr {
	e := newSentinelErr(http.StatusBadRequest, ErrValidationFailed, "Validation error")
	e.Errors = messages
	return e
}

func NewCORSError(origin string) *ApiErr {
	return newSentinelErr(http.StatusForbidden, ErrCORSBlocked,
		fmt.Sprintf("Origin '%s' is not allowed by CORS policy", origin))
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
