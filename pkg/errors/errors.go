package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType classifies a DomainError
type ErrorType string

const (
	ErrorTypeValidation             ErrorType = "validation"
	ErrorTypeNotFound               ErrorType = "not_found"
	ErrorTypeIO                     ErrorType = "io"
	ErrorTypeInternal               ErrorType = "internal"
	ErrorTypeMissingConfiguration   ErrorType = "missing_configuration"
	ErrorTypeMalformedConfiguration ErrorType = "malformed_configuration"
	ErrorTypeIndexOutOfRange        ErrorType = "index_out_of_range"
)

// DomainError is the error type returned by every package of this module
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]string
}

// NewDomainError creates a DomainError of the given type
func NewDomainError(errorType ErrorType, message string, cause error) *DomainError {
	return &DomainError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// WithContext attaches a key/value pair describing where the error happened
func (e *DomainError) WithContext(key, value string) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	b.WriteString(": ")
	b.WriteString(e.Message)

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, e.Context[k]))
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(pairs, ", "))
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func NewValidationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeValidation, message, cause)
}

func NewNotFoundError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeNotFound, message, cause)
}

func NewIOError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeIO, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeInternal, message, cause)
}

// NewMissingConfigurationError reports that the configuration file does not exist
func NewMissingConfigurationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeMissingConfiguration, message, cause)
}

// NewMalformedConfigurationError reports unparsable JSON or an unexpected document shape
func NewMalformedConfigurationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeMalformedConfiguration, message, cause)
}

// NewIndexOutOfRangeError reports access beyond the bounds of a collection
func NewIndexOutOfRangeError(index, length int) *DomainError {
	return NewDomainError(
		ErrorTypeIndexOutOfRange,
		fmt.Sprintf("index %d out of range [0, %d)", index, length),
		nil,
	).WithContext("index", fmt.Sprintf("%d", index)).WithContext("length", fmt.Sprintf("%d", length))
}

// IsType reports whether any DomainError in err's chain has the given type
func IsType(err error, errorType ErrorType) bool {
	for err != nil {
		var domainErr *DomainError
		if !errors.As(err, &domainErr) {
			return false
		}
		if domainErr.Type == errorType {
			return true
		}
		err = domainErr.Cause
	}
	return false
}

func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

func IsNotFoundError(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsIOError(err error) bool {
	return IsType(err, ErrorTypeIO)
}

func IsInternalError(err error) bool {
	return IsType(err, ErrorTypeInternal)
}

func IsMissingConfigurationError(err error) bool {
	return IsType(err, ErrorTypeMissingConfiguration)
}

func IsMalformedConfigurationError(err error) bool {
	return IsType(err, ErrorTypeMalformedConfiguration)
}

func IsIndexOutOfRangeError(err error) bool {
	return IsType(err, ErrorTypeIndexOutOfRange)
}
