// Package errx provides registry-based application errors that carry an HTTP
// status and a machine-readable code alongside the human message.
package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for the outermost handler.
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeBusiness       Type = "BUSINESS"
	TypeRateLimit      Type = "RATE_LIMIT"
	TypeExternal       Type = "EXTERNAL"
	TypeInternal       Type = "INTERNAL"
)

// Code is a registered error template.
type Code struct {
	registry *Registry
	code     string
	errType  Type
	status   int
	message  string
}

// Registry scopes error codes to a module prefix (e.g. "RESUME").
type Registry struct {
	prefix string
	codes  map[string]*Code
}

func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]*Code),
	}
}

// Register adds a code template to the registry and returns it.
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) *Code {
	c := &Code{
		registry: r,
		code:     code,
		errType:  errType,
		status:   httpStatus,
		message:  message,
	}
	r.codes[code] = c
	return c
}

// New instantiates an error from a registered code.
func (r *Registry) New(code *Code) *Error {
	return &Error{
		Type:       code.errType,
		Code:       fmt.Sprintf("%s_%s", r.prefix, code.code),
		Message:    code.message,
		HTTPStatus: code.status,
	}
}

// NewWithCause instantiates an error from a registered code wrapping the
// underlying cause.
func (r *Registry) NewWithCause(code *Code, cause error) *Error {
	e := r.New(code)
	e.cause = cause
	return e
}

// Error is the concrete application error rendered by the global handler.
type Error struct {
	Type       Type           `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithDetail attaches a single key/value to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches several key/values at once.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// ToHTTPResponse returns the JSON body for the error response. The cause is
// deliberately excluded; it is for logs only.
func (e *Error) ToHTTPResponse() map[string]any {
	body := map[string]any{
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	return body
}

// Wrap turns an arbitrary error into an *Error of the given type.
func Wrap(err error, message string, errType Type) *Error {
	return &Error{
		Type:       errType,
		Code:       string(errType),
		Message:    message,
		HTTPStatus: statusFor(errType),
		cause:      err,
	}
}

func statusFor(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeRateLimit:
		return http.StatusTooManyRequests
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
