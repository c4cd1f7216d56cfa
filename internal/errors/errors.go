// Package errors provides the error kinds surfaced by the bug report
// chat client and proxy.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMissingCredential = errors.New("API key not configured")
	ErrEmptySubmission   = errors.New("nothing to send")
	ErrRequestInFlight   = errors.New("a request is already in flight")
)

// InvalidFileTypeError reports an attachment whose MIME type is not an
// image type.
type InvalidFileTypeError struct {
	MIMEType string
}

func (e *InvalidFileTypeError) Error() string {
	if e.MIMEType == "" {
		return "only image files can be attached"
	}
	return fmt.Sprintf("only image files can be attached, got %s", e.MIMEType)
}

// NewInvalidFileTypeError creates a new InvalidFileTypeError
func NewInvalidFileTypeError(mimeType string) *InvalidFileTypeError {
	return &InvalidFileTypeError{MIMEType: mimeType}
}

// FileTooLargeError reports an attachment over the size limit
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("image is too large (%d bytes, limit %d)", e.Size, e.Limit)
}

// NewFileTooLargeError creates a new FileTooLargeError
func NewFileTooLargeError(size, limit int64) *FileTooLargeError {
	return &FileTooLargeError{Size: size, Limit: limit}
}

// ReadError reports a failure reading or encoding the attached file
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError
func NewReadError(path string, err error) *ReadError {
	return &ReadError{Path: path, Err: err}
}

// TransportError reports a network-level failure reaching the proxy
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// UpstreamError reports a non-2xx response from the proxy. Message is
// taken from the response's error field when present.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(statusCode int, message string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Message: message}
}

// IsTransportError reports whether err is a network-level failure
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsUpstreamError reports whether err is a non-2xx proxy response
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsAttachError reports whether err came from attachment validation
func IsAttachError(err error) bool {
	var ift *InvalidFileTypeError
	var ftl *FileTooLargeError
	var re *ReadError
	return errors.As(err, &ift) || errors.As(err, &ftl) || errors.As(err, &re)
}

// GetHTTPStatus extracts the HTTP status from an UpstreamError, or 0
func GetHTTPStatus(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
