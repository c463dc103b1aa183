package errs

import (
	"errors"
	"fmt"
)

// Generic messages shown when no structured reason is available.
const (
	GenericConversionMessage = "Conversion failed"
	GenericTransportMessage  = "Please try again"
)

var (
	ErrMissingInput         = errors.New("no image selected")
	ErrConversionInProgress = errors.New("conversion already in progress")
	ErrNoAsset              = errors.New("no converted model")
	ErrAssetReleased        = errors.New("asset reference released")
	ErrEmptyFile            = errors.New("file is empty")
	ErrFileTooLarge         = errors.New("file too large")
	ErrClosed               = errors.New("workflow closed")
)

// UnsupportedTypeError is returned for a selection whose declared type is not an image.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: only images are accepted", e.ContentType)
}

// ConversionError is a non-2xx answer of the conversion service.
type ConversionError struct {
	StatusCode int
	Message    string
}

func (e *ConversionError) Error() string {
	if e.Message == "" {
		return GenericConversionMessage
	}

	return e.Message
}

// TransportError wraps a network level failure talking to the conversion service.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return GenericTransportMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Reason returns the user facing message for a failed conversion.
// Anything other than a service or transport failure gets the generic message.
func Reason(err error) string {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr.Error()
	}

	var trErr *TransportError
	if errors.As(err, &trErr) {
		return trErr.Error()
	}

	return GenericConversionMessage
}
