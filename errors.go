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

package blfreader

import (
	"io"

	"github.com/13521900025/blfreader/internal/blferr"
)

// EOF is returned by Read when the virtual stream is exhausted cleanly,
// including the case of trailing padding of 16 bytes or less after the
// last object.
var EOF = io.EOF

// IsNotMine reports whether err indicates the byte source isn't a BLF
// file at all (magic mismatch at Open).
func IsNotMine(err error) bool { return blferr.Is(err, blferr.KindNotMine) }

// IsMalformed reports whether err indicates a structurally invalid
// object: a declared size inconsistent with its own header, a payload
// extending past the object, or an unsupported header_type.
func IsMalformed(err error) bool { return blferr.Is(err, blferr.KindMalformedObject) }

// IsUnsupported reports whether err indicates a structurally valid but
// unsupported feature: unknown compression method, a nested log
// container, or internally inconsistent container offsets.
func IsUnsupported(err error) bool { return blferr.Is(err, blferr.KindUnsupported) }

// IsDecompressFailed reports whether err indicates DEFLATE inflation did
// not end cleanly.
func IsDecompressFailed(err error) bool { return blferr.Is(err, blferr.KindDecompressFailed) }
