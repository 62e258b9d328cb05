// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package compiler

import "errors"

var (
	// ErrUnresolvedType indicates a field type that names no scalar, enum or model.
	ErrUnresolvedType = errors.New("unresolved type reference")

	// ErrMalformedField indicates a field declaration the compiler cannot use.
	ErrMalformedField = errors.New("malformed field")

	// ErrDanglingRef indicates a compiled schema holding a $ref with no matching definition.
	ErrDanglingRef = errors.New("dangling $ref")
)
