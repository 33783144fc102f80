package errx

import (
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeBusiness       Type = "BUSINESS"
	TypeExternal       Type = "EXTERNAL"
	TypeInternal       Type = "INTERNAL"
)

// Code is a registered error code, namespaced by its registry prefix
type Code string

type definition struct {
	code       Code
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error definitions for one domain
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with the given domain name
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register adds an error definition and returns its namespaced code
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	full := Code(r.prefix + ":" + code)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[full] = definition{
		code:       full,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New creates an error from a registered code
func (r *Registry) New(code Code) *Error {
	return r.NewWithCause(code, nil)
}

// NewWithCause creates an error from a registered code wrapping an underlying cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		def = definition{
			code:       code,
			errType:    TypeInternal,
			httpStatus: http.StatusInternalServerError,
			message:    "Unknown error",
		}
	}

	return &Error{
		Code:       def.code,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
		cause:      cause,
	}
}

// Error is a structured application error
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a single key/value detail and returns the error for chaining
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches a map of details and returns the error for chaining
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// Is matches errors created from the same registered code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// ToHTTPResponse renders the error as a JSON-serializable response body
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error with the given message and type
func Wrap(err error, message string, errType Type) *Error {
	status := http.StatusInternalServerError
	switch errType {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthentication:
		status = http.StatusUnauthorized
	case TypeAuthorization:
		status = http.StatusForbidden
	case TypeBusiness:
		status = http.StatusUnprocessableEntity
	case TypeExternal:
		status = http.StatusBadGateway
	}

	return &Error{
		Code:       Code(string(errType) + ":WRAPPED"),
		Type:       errType,
		Message:    message,
		HTTPStatus: status,
		cause:      err,
	}
}
