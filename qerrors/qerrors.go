// Package qerrors defines the typed error kinds shared by the scalar and
// logical plan packages. Every kind is a sentinel that callers can match
// with errors.Is; package functions wrap a sentinel with contextual detail
// via fmt.Errorf("...: %w", ...) rather than returning ad-hoc strings.
package qerrors

import "errors"

// Scalar layer (spec.md §7).
var (
	ErrInvalidDecimal = errors.New("invalid decimal")
	ErrNotNegatable   = errors.New("value is not negatable")
	ErrHeterogeneous  = errors.New("heterogeneous scalar sequence")
	ErrEmpty          = errors.New("empty scalar sequence")
	ErrUnsupported    = errors.New("unsupported type")
)

// Plan layer (spec.md §7).
var (
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrAmbiguousReference    = errors.New("ambiguous reference")
	ErrFieldNotFound         = errors.New("field not found")
	ErrDuplicateOutputName   = errors.New("duplicate output name")
	ErrJoinKeyArityMismatch  = errors.New("join key arity mismatch")
	ErrJoinKeyNotFound       = errors.New("join key not found")
	ErrUnresolvedSortColumn  = errors.New("unresolved sort column")
	ErrSchemaIncompatible    = errors.New("schema incompatible")
	ErrInconsistentRowShape  = errors.New("inconsistent row shape")
	ErrInconsistentColType   = errors.New("inconsistent column type")
	ErrEmptyValues           = errors.New("values relation must have at least one row")
	ErrEmptyUnion            = errors.New("union must have at least one input")
	ErrInternal              = errors.New("internal plan error")
)

// Materialization layer (spec.md §7).
var (
	ErrAllocationFailed = errors.New("allocation failed")
	ErrAdapter          = errors.New("columnar adapter error")
)
