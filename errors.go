// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// errors.go — sentinel error variables returned by the public VSNSL API,
// covering charset configuration, input format, lock usage, and storage
// problems, plus the BatchError wrapper that carries a failing index.

// Package vsnsl provides a deterministic, reversible text↔number codec: each
// character maps to a fixed-width code, shifted by an integer lock. It is an
// arithmetic transform, not a cipher.
package vsnsl

import (
	"errors"
	"fmt"
)

// Input errors
var (
	ErrUnknownCharacter = errors.New("vsnsl: character not in charset table")
	ErrUnknownCode      = errors.New("vsnsl: code not in charset table")
	ErrMalformedLength  = errors.New("vsnsl: encoded length is not a multiple of the code width")
	ErrMalformedDigits  = errors.New("vsnsl: encoded group contains non-digit characters")
)

// Usage errors
var (
	ErrEmptyLockSequence = errors.New("vsnsl: lock sequence is empty")
	ErrLockOverflow      = errors.New("vsnsl: lock pushes code outside the code width")
	ErrDigitsNotMapped   = errors.New("vsnsl: charset table does not map the decimal digits")
)

// Configuration errors
var (
	ErrTableNotInitialized = errors.New("vsnsl: charset table not initialized")
	ErrInvalidTable        = errors.New("vsnsl: invalid charset table")
	ErrInvalidConfig       = errors.New("vsnsl: invalid configuration")
)

// Charset storage errors
var (
	ErrCharsetNotFound  = errors.New("vsnsl: charset not found")
	ErrCharsetDuplicate = errors.New("vsnsl: charset already registered")
	ErrUnknownFormat    = errors.New("vsnsl: unknown charset file format")
)

// BatchError wraps the error of the batch element that failed, preserving
// its position so callers can report which input was at fault.
type BatchError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	return fmt.Sprintf("vsnsl: batch element %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying element error.
func (e *BatchError) Unwrap() error { return e.Err }
