// Copyright 2026 BLF Reader Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package blferr defines the error taxonomy shared by every layer of the
// BLF reader: container scanning, object framing and payload translation
// all fail through the same small set of kinds so a caller can branch on
// Kind() instead of matching strings.
package blferr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a reader error into one of the recovery paths described
// by the format's error model: either the caller should try a different
// reader, treat the condition as a clean end of stream, or abandon the
// stream outright.
type Kind int

const (
	// KindUnknown is the zero value and never constructed by this package.
	KindUnknown Kind = iota
	// KindNotMine means the byte source isn't a BLF file at all.
	KindNotMine
	// KindMalformedObject means an object's declared size is inconsistent
	// with its own header or with the bytes actually available.
	KindMalformedObject
	// KindUnsupported means a structurally valid but unsupported feature
	// was encountered (unknown compression method, nested log container,
	// internally inconsistent container offsets).
	KindUnsupported
	// KindDecompressFailed means DEFLATE inflation did not end cleanly.
	KindDecompressFailed
)

func (k Kind) String() string {
	switch k {
	case KindNotMine:
		return "not-mine"
	case KindMalformedObject:
		return "malformed-object"
	case KindUnsupported:
		return "unsupported"
	case KindDecompressFailed:
		return "decompress-failed"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every exported operation
// that can fail for a format-specific reason. Plain Go errors (I/O errors
// from the byte source) are returned unwrapped.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and message to an underlying cause, preserving it for
// errors.Cause/errors.Is the way internal/primitive/errors.Chain does.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{kind: kind, msg: msg, cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("blf: %s: %s: %v", e.kind, e.msg, e.cause)
	}
	return fmt.Sprintf("blf: %s: %s", e.kind, e.msg)
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.kind == kind
}
