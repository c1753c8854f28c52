// Package errors defines the structured error type shared by the build
// engine. Every failure the engine surfaces is an *EngineError carrying a
// category, a stable code, and the originating message, so callers (CLI and
// HTTP transport alike) can map failures without string matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Type categorizes engine errors.
type Type string

const (
	TypeSecurity Type = "security"
	TypeNotFound Type = "not_found"
	TypeParse    Type = "parse"
	TypeTemplate Type = "template"
	TypeRender   Type = "render"
	TypeWrite    Type = "write"
	TypeConfig   Type = "config"
	TypeInternal Type = "internal"
)

// Common error codes.
const (
	ErrCodePathEscape       = "ERR_PATH_ESCAPE"
	ErrCodeInvalidPath      = "ERR_INVALID_PATH"
	ErrCodeDataNotFound     = "ERR_DATA_NOT_FOUND"
	ErrCodeDataMalformed    = "ERR_DATA_MALFORMED"
	ErrCodeDataShape        = "ERR_DATA_SHAPE"
	ErrCodeTemplateNotFound = "ERR_TEMPLATE_NOT_FOUND"
	ErrCodeTemplateParse    = "ERR_TEMPLATE_PARSE"
	ErrCodeRenderFailed     = "ERR_RENDER_FAILED"
	ErrCodeWriteFailed      = "ERR_WRITE_FAILED"
	ErrCodeBatchSource      = "ERR_BATCH_SOURCE"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeInternal         = "ERR_INTERNAL"
)

// EngineError is a structured error with category and context.
type EngineError struct {
	Type    Type
	Code    string
	Message string
	Path    string
	Cause   error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is matches errors by type and code.
func (e *EngineError) Is(target error) bool {
	var t *EngineError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithPath attaches the offending path to the error.
func (e *EngineError) WithPath(path string) *EngineError {
	e.Path = path

	return e
}

// Error creation functions

// NewSecurityError creates a sandbox violation error.
func NewSecurityError(code, message string) *EngineError {
	return &EngineError{Type: TypeSecurity, Code: code, Message: message}
}

// NewNotFoundError creates a missing file error.
func NewNotFoundError(code, message string) *EngineError {
	return &EngineError{Type: TypeNotFound, Code: code, Message: message}
}

// NewParseError creates a malformed input error.
func NewParseError(code, message string, cause error) *EngineError {
	return &EngineError{Type: TypeParse, Code: code, Message: message, Cause: cause}
}

// NewTemplateError creates a template load error.
func NewTemplateError(code, message string, cause error) *EngineError {
	return &EngineError{Type: TypeTemplate, Code: code, Message: message, Cause: cause}
}

// NewRenderError creates a render failure error.
func NewRenderError(code, message string, cause error) *EngineError {
	return &EngineError{Type: TypeRender, Code: code, Message: message, Cause: cause}
}

// NewWriteError creates an output persistence error.
func NewWriteError(code, message string, cause error) *EngineError {
	return &EngineError{Type: TypeWrite, Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *EngineError {
	return &EngineError{Type: TypeConfig, Code: code, Message: message}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *EngineError {
	return &EngineError{Type: TypeInternal, Code: code, Message: message, Cause: cause}
}

// TypeOf returns the category of err, or TypeInternal for foreign errors.
func TypeOf(err error) Type {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Type
	}

	return TypeInternal
}

// IsSecurity reports whether err is a sandbox violation.
func IsSecurity(err error) bool {
	return TypeOf(err) == TypeSecurity
}

// IsNotFound reports whether err is a missing-file error.
func IsNotFound(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Type == TypeNotFound
	}

	return false
}
