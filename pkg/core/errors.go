package core

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of a client error.
type ErrorKind int

// Error kinds separate failures that happen before, during and after a call.
const (
	// KindUnknown indicates an unclassified error.
	KindUnknown ErrorKind = iota
	// KindSigning indicates the payload could not be serialized or credentials were missing.
	KindSigning
	// KindTransport indicates a network-level failure with no HTTP response.
	KindTransport
	// KindProtocol indicates the exchange answered with a non-2xx status.
	KindProtocol
	// KindConnectionDropped indicates a stream connection ended unexpectedly.
	KindConnectionDropped
	// KindDecode indicates a response body that is not the expected JSON.
	KindDecode
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	return [...]string{
		"UNKNOWN",
		"SIGNING",
		"TRANSPORT",
		"PROTOCOL",
		"CONNECTION_DROPPED",
		"DECODE",
	}[k]
}

// Sentinel errors for common error conditions.
var (
	// ErrNoCredentials is returned when a private call is made without an API key pair.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrSessionClosed is returned when running a session that was closed.
	ErrSessionClosed = errors.New("session is closed")
	// ErrSessionRunning is returned when a session is run twice.
	ErrSessionRunning = errors.New("session already running")
	// ErrUnknownHandle is returned when unsubscribing a handle that is not active.
	ErrUnknownHandle = errors.New("unknown subscription handle")
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
)

// Error is the structured error returned by every layer of the client.
type Error struct {
	// Kind categorizes the error for programmatic handling.
	Kind ErrorKind `json:"kind"`
	// Op names the operation that failed, e.g. "GET /accounts/balance".
	Op string `json:"op"`
	// StatusCode is the HTTP status code, zero when no response was received.
	StatusCode int `json:"status_code,omitempty"`
	// Message is the exchange's "error" field or a description of the failure.
	Message string `json:"message"`
	// Body is the decoded JSON body of a non-2xx response, if it was JSON.
	Body map[string]any `json:"body,omitempty"`
	// Raw is the undecoded response body.
	Raw []byte `json:"-"`
	// Err is the underlying cause.
	Err error `json:"-"`
}

// Error returns a formatted string with kind, operation, status code and message.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("[bitopro] %s %s (%d): %s", e.Kind, e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("[bitopro] %s %s: %s", e.Kind, e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error of the given kind wrapping err.
func NewError(kind ErrorKind, op string, err error) *Error {
	e := &Error{Kind: kind, Op: op, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

// NewProtocolError creates an Error for a non-2xx response. When raw is a JSON
// object, its "error" field becomes the message and the object is kept as Body.
func NewProtocolError(op string, statusCode int, raw []byte, body map[string]any) *Error {
	e := &Error{
		Kind:       KindProtocol,
		Op:         op,
		StatusCode: statusCode,
		Body:       body,
		Raw:        raw,
	}
	if msg, ok := body["error"].(string); ok {
		e.Message = msg
	} else {
		e.Message = string(raw)
	}
	return e
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsSigningError returns true if the request could not be signed.
func IsSigningError(err error) bool {
	return isKind(err, KindSigning)
}

// IsTransportError returns true if no HTTP response was received.
func IsTransportError(err error) bool {
	return isKind(err, KindTransport)
}

// IsProtocolError returns true if the exchange rejected the call with a non-2xx status.
func IsProtocolError(err error) bool {
	return isKind(err, KindProtocol)
}

// IsConnectionDropped returns true if a stream connection ended unexpectedly.
func IsConnectionDropped(err error) bool {
	return isKind(err, KindConnectionDropped)
}

// IsDecodeError returns true if a response body could not be decoded.
func IsDecodeError(err error) bool {
	return isKind(err, KindDecode)
}

// StatusCode extracts the HTTP status code from err, or zero.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
