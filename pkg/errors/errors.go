package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for translation to an HTTP status at the transport boundary.
type Kind int

const (
	KindUnhandled Kind = iota
	KindClientInput
	KindUpstreamStorage
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindClientInput:
		return "client_input"
	case KindUpstreamStorage:
		return "upstream_storage"
	case KindNotFound:
		return "not_found"
	default:
		return "unhandled"
	}
}

// Sentinel errors for use with errors.Is()
var (
	ErrMissingFile   = errors.New("no file uploaded")
	ErrMissingKey    = errors.New("file key is required")
	ErrInvalidKey    = errors.New("invalid file name")
	ErrUploadFailed  = errors.New("upload failed")
	ErrListFailed    = errors.New("list failed")
	ErrStreamFailed  = errors.New("stream failed")
	ErrRouteNotFound = errors.New("route not found")
)

// AppError carries a Kind, a public message and the underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Details returns the text of the underlying cause, skipping the sentinel
// that only tags the failure class.
func (e *AppError) Details() string {
	var cause *causeError
	if errors.As(e.Err, &cause) {
		return cause.cause.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// causeError joins a sentinel with the concrete failure so both errors.Is
// on the sentinel and errors.Is/As on the cause keep working.
type causeError struct {
	sentinel error
	cause    error
}

func (c *causeError) Error() string {
	return fmt.Sprintf("%v: %v", c.sentinel, c.cause)
}

func (c *causeError) Is(target error) bool {
	return target == c.sentinel
}

func (c *causeError) Unwrap() error {
	return c.cause
}

// Constructors
func MissingFile() *AppError {
	return &AppError{Kind: KindClientInput, Message: "No file uploaded", Err: ErrMissingFile}
}

func MissingKey() *AppError {
	return &AppError{Kind: KindClientInput, Message: "File key is required", Err: ErrMissingKey}
}

func InvalidKey(reason error) *AppError {
	return &AppError{Kind: KindClientInput, Message: "Invalid file name", Err: &causeError{sentinel: ErrInvalidKey, cause: reason}}
}

func UploadFailed(err error) *AppError {
	return &AppError{Kind: KindUpstreamStorage, Message: "Failed to upload file", Err: &causeError{sentinel: ErrUploadFailed, cause: err}}
}

func ListFailed(err error) *AppError {
	return &AppError{Kind: KindUpstreamStorage, Message: "Failed to list files", Err: &causeError{sentinel: ErrListFailed, cause: err}}
}

func StreamFailed(err error) *AppError {
	return &AppError{Kind: KindUpstreamStorage, Message: "Failed to stream file", Err: &causeError{sentinel: ErrStreamFailed, cause: err}}
}

func RouteNotFound() *AppError {
	return &AppError{Kind: KindNotFound, Message: "Route not found", Err: ErrRouteNotFound}
}

// KindOf reports the Kind of err, or KindUnhandled if err is not an *AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnhandled
}
