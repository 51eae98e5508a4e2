package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig matches any *ConfigError with errors.Is.
	ErrConfig = errors.New("invalid configuration")
	// ErrDomain matches any *DomainError with errors.Is.
	ErrDomain = errors.New("domain error")
)

// ConfigError reports a parameter combination that must be rejected before a
// simulation starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError builds a ConfigError with a formatted reason.
func NewConfigError(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DomainError reports an arithmetic or state inconsistency hit while a policy
// runs. It is fatal to the run that raised it.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// NewDomainError builds a DomainError with a formatted reason.
func NewDomainError(op, format string, args ...interface{}) *DomainError {
	return &DomainError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
