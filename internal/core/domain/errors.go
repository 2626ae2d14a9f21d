package domain

import (
	"errors"
	"fmt"
)

// Domain errors classify every failure the finder can surface.
// Callers match them with errors.Is; the typed errors below unwrap to them.
var (
	// ErrUnsupportedPlatform indicates the OS, architecture or libc
	// combination has no prebuilt native library.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrBinaryNotFound indicates the native library is not installed in any
	// search root. See BinaryNotFoundError for the install hint.
	ErrBinaryNotFound = errors.New("native library not found")

	// ErrLoadFailure indicates the native library exists but could not be
	// opened or its required symbols could not be bound.
	ErrLoadFailure = errors.New("native library failed to load")

	// ErrNullResult indicates a native call returned no result record.
	ErrNullResult = errors.New("FFI returned null pointer")

	// ErrDecodeFailure indicates a result record or its payload could not be
	// decoded. The library stays usable for later calls.
	ErrDecodeFailure = errors.New("failed to decode FFI result")

	// ErrNative indicates the native engine reported success=false.
	// See NativeError for the engine's message.
	ErrNative = errors.New("native engine error")

	// ErrNotInitialized indicates a state-dependent call was made before Init.
	// Such calls never reach the native layer.
	ErrNotInitialized = errors.New("file finder not initialized: call Init first")

	// ErrUnsupported indicates the loaded native library lacks an optional
	// capability (live grep on older builds).
	ErrUnsupported = errors.New("not supported by this native library")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSessionConflict indicates a session is already active on a
	// different base path.
	ErrSessionConflict = errors.New("session already active on another base path")
)

// BinaryNotFoundError is returned when no search root holds the native library.
type BinaryNotFoundError struct {
	// InstallHint names the distribution package that should be installed.
	InstallHint string
}

// Error implements error.
func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf(
		"fff native library not found. Install the matching platform package (%s) "+
			"and reinstall with optional dependencies enabled",
		e.InstallHint,
	)
}

// Unwrap makes errors.Is(err, ErrBinaryNotFound) hold.
func (e *BinaryNotFoundError) Unwrap() error {
	return ErrBinaryNotFound
}

// unknownNativeError is reported when the engine fails without a message.
const unknownNativeError = "Unknown error"

// NativeError carries the message of a native success=false reply.
type NativeError struct {
	// Op is the native entry point that failed.
	Op string

	// Message is the engine's error text.
	Message string
}

// NewNativeError builds a NativeError, substituting a generic message
// when the engine supplied none.
func NewNativeError(op, message string) *NativeError {
	if message == "" {
		message = unknownNativeError
	}
	return &NativeError{Op: op, Message: message}
}

// Error implements error.
func (e *NativeError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

// Unwrap makes errors.Is(err, ErrNative) hold.
func (e *NativeError) Unwrap() error {
	return ErrNative
}
