package http

import (
	"fmt"
	"net/http"
	"strings"
)

// Error codes of the price API.
const (
	CodeUnknownInstrument = "ERR_UNKNOWN_INSTRUMENT"
	CodeStoreUnavailable  = "ERR_STORE_UNAVAILABLE"
	CodeReadFailed        = "ERR_READ_FAILED"
)

// AppError is an API error with the HTTP status it is written with.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
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

// NewAppError creates an AppError without params.
func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		Status:  status,
	}
}

// WithParam sets a single error param.
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]interface{})
	}
	e.Params[key] = value
	return e
}

// WithError wraps the cause. The cause is logged, never serialized.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// UnknownInstrumentError is a 404 for instrument keys outside the catalog.
func UnknownInstrumentError(keys ...string) *AppError {
	return NewAppError(CodeUnknownInstrument, "key",
		"unknown instrument: "+strings.Join(keys, ","), http.StatusNotFound).
		WithParam("keys", keys)
}

// StoreUnavailableError is a 503 for a price store that fails its ping.
func StoreUnavailableError() *AppError {
	return NewAppError(CodeStoreUnavailable, "", "price store unavailable", http.StatusServiceUnavailable)
}

// ReadFailedError is a 500 for a failed price read; op names the endpoint.
func ReadFailedError(op string) *AppError {
	return NewAppError(CodeReadFailed, "", "failed to read prices", http.StatusInternalServerError).
		WithParam("op", op)
}
