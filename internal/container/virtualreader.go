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

package container

import (
	"io"

	"github.com/13521900025/blfreader/internal/wire"
)

// ReadVirtual copies exactly len(out) bytes starting at virtual offset
// pos into out, pulling and decompressing whichever compressed
// containers the range spans and reading straight from src for
// uncompressed ones. Every layer above the container package addresses
// the file this way; none of them ever sees a physical offset or a
// compression method.
func (c *Cache) ReadVirtual(pos int64, out []byte) error {
	want := len(out)
	filled := 0

	for filled < want {
		d := c.index.find(pos)
		if d == nil {
			if filled > 0 {
				return io.ErrUnexpectedEOF
			}
			return io.EOF
		}

		offInContainer := pos - d.RealStartPos
		avail := d.RealLength - offInContainer
		if avail <= 0 {
			return io.ErrUnexpectedEOF
		}

		n := int64(want - filled)
		if n > avail {
			n = avail
		}

		if d.CompressionMethod == wire.CompressionNone {
			if err := readFull(c.src, d.InfileDataStart+offInContainer, out[filled:filled+int(n)]); err != nil {
				return err
			}
		} else {
			buf, err := c.pull(d)
			if err != nil {
				return err
			}
			bufAvail := int64(len(buf)) - offInContainer
			if bufAvail <= 0 {
				return io.ErrUnexpectedEOF
			}
			if n > bufAvail {
				n = bufAvail
			}
			copy(out[filled:filled+int(n)], buf[offInContainer:offInContainer+n])
		}

		filled += int(n)
		pos += n
	}

	return nil
}

// VirtualSize reports the total decompressed extent known to the cache.
func (c *Cache) VirtualSize() int64 { return c.index.VirtualSize() }
