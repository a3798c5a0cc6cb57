// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import "github.com/pkg/errors"

// Error categories. Errors returned by this package and by component families
// wrap one of these; use errors.Is to test for them.
//
var (
	// ErrConfig reports a missing or invalid attribute.
	ErrConfig = errors.New("invalid configuration")
	// ErrUnsupported reports a family that cannot be generated for the
	// requested language.
	ErrUnsupported = errors.New("unsupported target")
	// ErrGenericContract reports a mismatch between the declared generics
	// of a generator and the values it resolves.
	ErrGenericContract = errors.New("generic contract violation")
)
