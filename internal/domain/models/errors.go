package models

import (
	"errors"
	"fmt"
	"time"
)

// Error taxonomy for the ingestion pipeline. Match with errors.Is.
var (
	// ErrNetwork covers transport failures, timeouts and non-success statuses.
	ErrNetwork = errors.New("network error")
	// ErrSchema means a provider payload lacked an expected field.
	ErrSchema = errors.New("schema error")
	// ErrStale means a fetched record is not dated on the run's target date.
	ErrStale = errors.New("stale data")
	// ErrDerivation means an input to a computed value was unavailable this run.
	ErrDerivation = errors.New("derivation error")
	// ErrStorage means the datastore refused a read or write.
	ErrStorage = errors.New("storage error")
	// ErrUnexpected marks a recovered panic inside a fetch stage.
	ErrUnexpected = errors.New("unexpected error")
)

// SourceError is returned by every provider client call.
type SourceError struct {
	Source string // provider name, e.g. "alphavantage"
	Op     string // operation, e.g. "daily_close SPY"
	Kind   error  // ErrNetwork or ErrSchema
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Source, e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Kind)
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NetworkError builds a SourceError of kind ErrNetwork.
func NetworkError(source, op string, err error) *SourceError {
	return &SourceError{Source: source, Op: op, Kind: ErrNetwork, Err: err}
}

// SchemaError builds a SourceError of kind ErrSchema.
func SchemaError(source, op string, format string, args ...any) *SourceError {
	return &SourceError{Source: source, Op: op, Kind: ErrSchema, Err: fmt.Errorf(format, args...)}
}

// StalenessError names the expected and the fetched date of a rejected record.
type StalenessError struct {
	Key      string
	Expected time.Time
	Actual   time.Time
}

func (e *StalenessError) Error() string {
	return fmt.Sprintf("%s: stale data: expected %s, got %s",
		e.Key, e.Expected.Format("2006-01-02"), e.Actual.Format("2006-01-02"))
}

func (e *StalenessError) Unwrap() error { return ErrStale }

// DerivationError builds an ErrDerivation with context.
func DerivationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDerivation, fmt.Sprintf(format, args...))
}

// StorageError wraps a datastore failure.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// ErrorKind classifies err into a short label for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrStale):
		return "stale"
	case errors.Is(err, ErrDerivation):
		return "derivation"
	case errors.Is(err, ErrStorage):
		return "storage"
	case errors.Is(err, ErrUnexpected):
		return "unexpected"
	default:
		return "other"
	}
}
