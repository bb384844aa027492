/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrcode

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the failure kinds from spec §7. Per-candidate
// decoder kinds (NoCorner through UnsupportedMode) are recoverable; the
// input-level decoder kinds (InvalidInputFormat, UniformImage, NoFinders)
// and the encoder-side kinds are fatal.
type ErrorKind int8

const (
	// KindInvalidInputFormat means the bitmap stride is negative or the
	// pixel format is unsupported.
	KindInvalidInputFormat ErrorKind = iota
	// KindUniformImage means the luminance histogram has fewer than two
	// populated buckets.
	KindUniformImage
	// KindNoFinders means fewer than three finder candidates survived.
	KindNoFinders
	// KindNoCorner means no finder triple forms a valid L-corner.
	KindNoCorner
	// KindLinearSolveFailure means the transform's linear system is singular.
	KindLinearSolveFailure
	// KindFixedModuleMismatch means the sampled fixed-module error fraction
	// exceeds the EC-level tolerance.
	KindFixedModuleMismatch
	// KindUncorrectableBlock means Reed-Solomon reported more errors than
	// ecCw/2 in some block.
	KindUncorrectableBlock
	// KindPrematureEndOfData means the bit reader underflowed mid-segment.
	KindPrematureEndOfData
	// KindUnsupportedMode means the decoded mode indicator is not
	// Numeric/Alphanumeric/Byte/ECI/Terminator.
	KindUnsupportedMode
	// KindCapacityExceeded means the payload does not fit the chosen
	// version and error-correction level.
	KindCapacityExceeded
	// KindInvalidVersion means the requested version range is outside
	// [1,40] or empty; the encoder also reports a mask outside [-1,7] with
	// this kind.
	KindInvalidVersion
	// KindInvalidCharForMode means the caller forced a mode incompatible
	// with the payload bytes.
	KindInvalidCharForMode
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInputFormat:
		return "InvalidInputFormat"
	case KindUniformImage:
		return "UniformImage"
	case KindNoFinders:
		return "NoFinders"
	case KindNoCorner:
		return "NoCorner"
	case KindLinearSolveFailure:
		return "LinearSolveFailure"
	case KindFixedModuleMismatch:
		return "FixedModuleMismatch"
	case KindUncorrectableBlock:
		return "UncorrectableBlock"
	case KindPrematureEndOfData:
		return "PrematureEndOfData"
	case KindUnsupportedMode:
		return "UnsupportedMode"
	case KindCapacityExceeded:
		return "CapacityExceeded"
	case KindInvalidVersion:
		return "InvalidVersion"
	case KindInvalidCharForMode:
		return "InvalidCharForMode"
	default:
		return "Unknown"
	}
}

// Error wraps an ErrorKind with a free-form detail message and, optionally,
// an underlying cause. Use errors.As to recover the Kind from a returned
// error, or errors.Is against one of the sentinel Err* values below.
type Error struct {
	Kind   ErrorKind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match err against one of the sentinel Err* values by
// Kind alone, ignoring Detail/cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Kind == t.Kind
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// wrapError is newError with an underlying cause attached, reachable via
// errors.Unwrap/errors.Is/errors.As on the returned *Error.
func wrapError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), cause: cause}
}

// Sentinel Err* values for errors.Is, one per ErrorKind (spec §7).
var (
	ErrInvalidInputFormat  = &Error{Kind: KindInvalidInputFormat}
	ErrUniformImage        = &Error{Kind: KindUniformImage}
	ErrNoFinders           = &Error{Kind: KindNoFinders}
	ErrNoCorner            = &Error{Kind: KindNoCorner}
	ErrLinearSolveFailure  = &Error{Kind: KindLinearSolveFailure}
	ErrFixedModuleMismatch = &Error{Kind: KindFixedModuleMismatch}
	ErrUncorrectableBlock  = &Error{Kind: KindUncorrectableBlock}
	ErrPrematureEndOfData  = &Error{Kind: KindPrematureEndOfData}
	ErrUnsupportedMode     = &Error{Kind: KindUnsupportedMode}
	ErrCapacityExceeded    = &Error{Kind: KindCapacityExceeded}
	ErrInvalidVersion      = &Error{Kind: KindInvalidVersion}
	ErrInvalidCharForMode  = &Error{Kind: KindInvalidCharForMode}
)

// isKind reports whether err is, or wraps, an *Error of the given kind.
func isKind(err error, kind ErrorKind) bool {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind == kind
	}
	return false
}

// kindOf extracts the ErrorKind from err via errors.As, defaulting to
// KindInvalidInputFormat if err is not (or does not wrap) an *Error.
func kindOf(err error) ErrorKind {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindInvalidInputFormat
}
