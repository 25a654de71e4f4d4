package weather

import "errors"

// ErrNegativePlaces is returned by Round for a negative scale.
var ErrNegativePlaces = errors.New("decimal places must not be negative")

// InvalidInputError reports malformed or out-of-range user input.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// DataUnavailableError reports that forecast data could not be obtained.
// Message is shown to API clients as is; Err keeps the cause for logs.
type DataUnavailableError struct {
	Message string
	Err     error
}

func (e *DataUnavailableError) Error() string {
	return e.Message
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// NewInvalidInput returns an *InvalidInputError with the given message.
func NewInvalidInput(msg string) error {
	return &InvalidInputError{Message: msg}
}

// NewDataUnavailable returns a *DataUnavailableError wrapping cause.
func NewDataUnavailable(msg string, cause error) error {
	return &DataUnavailableError{Message: msg, Err: cause}
}
