package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotEnoughVerticesError is returned when a polygon has fewer than 3
// vertices.
type NotEnoughVerticesError struct {
	N int
}

func (e *NotEnoughVerticesError) Error() string {
	return fmt.Sprintf("polygon has %d vertices, need at least 3", e.N)
}

// NoVerticesError is returned when the whole input contained no vertices at
// all (not even a single incomplete polygon).
type NoVerticesError struct{}

func (e *NoVerticesError) Error() string {
	return "input contains no vertices"
}

// TrapezoidationError wraps an invariant violation discovered during phase 1
// (trapezoidation). It is almost always caused by illegal input: overlapping
// polygons, or two vertices sharing exact coordinates.
type TrapezoidationError struct {
	Cause error
}

func (e *TrapezoidationError) Error() string {
	return "trapezoidation failed: " + e.Cause.Error()
}

func (e *TrapezoidationError) Unwrap() error {
	return e.Cause
}

// InternalError wraps an algorithmic invariant failure. Equivalent to the
// Rust original's backtrace-carrying InternalError; github.com/pkg/errors
// attaches an equivalent stack trace to whatever it wraps, retrievable via
// "%+v" or errors.Cause.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Cause.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// Internalf builds an *InternalError from a formatted message, capturing a
// stack trace at the call site.
func Internalf(format string, args ...interface{}) error {
	return &InternalError{Cause: errors.Errorf(format, args...)}
}

// Trapezoidationf builds a *TrapezoidationError from a formatted message.
func Trapezoidationf(format string, args ...interface{}) error {
	return &TrapezoidationError{Cause: errors.Errorf(format, args...)}
}

// FanBuilderError wraps an error returned by the output collaborator,
// preserving it verbatim behind a stable core-level type so callers can
// errors.As into either the wrapper or the original builder error.
type FanBuilderError struct {
	Cause error
}

func (e *FanBuilderError) Error() string {
	return "fan builder: " + e.Cause.Error()
}

func (e *FanBuilderError) Unwrap() error {
	return e.Cause
}
