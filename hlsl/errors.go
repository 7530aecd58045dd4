// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "fmt"

// ErrorKind categorizes HLSL translation errors and diagnostics.
type ErrorKind uint8

const (
	// ErrUnsupportedType indicates a type shape outside the supported set.
	ErrUnsupportedType ErrorKind = iota

	// ErrMissingName indicates a variable that needs a name has none.
	ErrMissingName

	// ErrMissingReference indicates an id was read before any expression was bound to it.
	ErrMissingReference

	// ErrUnhandledOpcode indicates no handler exists for an opcode.
	ErrUnhandledOpcode

	// ErrMalformedInstruction indicates an instruction with too few operands.
	ErrMalformedInstruction

	// ErrRedefinition indicates a second definition of an already bound id.
	ErrRedefinition

	// ErrUnsupportedFeature indicates a construct the translator does not lower.
	ErrUnsupportedFeature

	// ErrIO indicates the output sink failed.
	ErrIO

	// ErrInvalidOptions indicates inconsistent options, such as a fallback
	// claiming an opcode the translator already handles.
	ErrInvalidOptions

	// ErrInternalError indicates an internal translator error.
	ErrInternalError
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedType:
		return "UnsupportedType"
	case ErrMissingName:
		return "MissingName"
	case ErrMissingReference:
		return "MissingReference"
	case ErrUnhandledOpcode:
		return "UnhandledOpcode"
	case ErrMalformedInstruction:
		return "MalformedInstruction"
	case ErrRedefinition:
		return "Redefinition"
	case ErrUnsupportedFeature:
		return "UnsupportedFeature"
	case ErrIO:
		return "IO"
	case ErrInvalidOptions:
		return "InvalidOptions"
	case ErrInternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Error represents an HLSL translation error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// ID optionally identifies the offending SPIR-V id (0 if none).
	ID uint32

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.ID != 0 {
		return fmt.Sprintf("hlsl %s at %%%d: %s", e.Kind, e.ID, msg)
	}
	return fmt.Sprintf("hlsl %s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new HLSL error without an id.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// newIDError creates an error about a specific id.
func newIDError(kind ErrorKind, id uint32, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		ID:      id,
	}
}

// IsUnsupportedType returns true if the error is ErrUnsupportedType.
func (e *Error) IsUnsupportedType() bool {
	return e.Kind == ErrUnsupportedType
}

// IsMissingName returns true if the error is ErrMissingName.
func (e *Error) IsMissingName() bool {
	return e.Kind == ErrMissingName
}

// IsIO returns true if the error is ErrIO.
func (e *Error) IsIO() bool {
	return e.Kind == ErrIO
}

// Diagnostic is a recoverable problem found during translation.
// Translation continues past a diagnostic; the output stays best-effort.
type Diagnostic struct {
	Kind    ErrorKind
	ID      uint32
	Message string
}

// String formats the diagnostic like an Error.
func (d Diagnostic) String() string {
	return (&Error{Kind: d.Kind, Message: d.Message, ID: d.ID}).Error()
}
