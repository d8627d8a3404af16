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

	"github.com/13521900025/blfreader/internal/blferr"
	"github.com/13521900025/blfreader/internal/wire"
)

// Index is the one-shot scan result: every log container in file order,
// each carrying both its physical (on-disk) and virtual (decompressed)
// byte ranges. Built once at open time and immutable thereafter — once a
// Descriptor is appended here its ranges never change, only its cached
// bytes are filled in lazily.
type Index struct {
	descriptors []*Descriptor
}

// Len returns the number of containers discovered.
func (x *Index) Len() int { return len(x.descriptors) }

// At returns the i'th container descriptor in file order.
func (x *Index) At(i int) *Descriptor { return x.descriptors[i] }

// VirtualSize is the total decompressed byte span covered by the index.
func (x *Index) VirtualSize() int64 {
	if len(x.descriptors) == 0 {
		return 0
	}
	last := x.descriptors[len(x.descriptors)-1]
	return last.End()
}

// find returns the container whose virtual range contains pos, or nil if
// pos lies past the end of every known container. Descriptors are sorted
// by construction, so this could be a binary search; a linear scan is
// kept since typical file sizes keep the index in the low thousands and
// random-access reads are rare next to sequential ones.
func (x *Index) find(pos int64) *Descriptor {
	for _, d := range x.descriptors {
		if d.Contains(pos) {
			return d
		}
	}
	return nil
}

// BuildIndex walks src starting at firstObjectPos, splitting it into log
// containers and recording their physical and virtual ranges without
// decompressing anything. Any top-level object that is not a log
// container is skipped in place; only LOG_CONTAINER objects extend the
// index. A mismatch between the expected LOBJ magic and what is actually
// found at the cursor resyncs by a single byte, tolerating the padding
// some writers leave between objects. Trailing bytes too short to hold
// a block header end the scan cleanly rather than as an error.
func BuildIndex(src Source, firstObjectPos, fileSize int64, metrics Metrics) (*Index, error) {
	idx := &Index{}

	pos := firstObjectPos
	virtualPos := int64(0)
	hdrBuf := make([]byte, wire.BlockHeaderSize)

	for {
		if pos+wire.BlockHeaderSize > fileSize {
			break
		}

		if err := readFull(src, pos, hdrBuf); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		if hdrBuf[0] != wire.ObjMagic[0] || hdrBuf[1] != wire.ObjMagic[1] ||
			hdrBuf[2] != wire.ObjMagic[2] || hdrBuf[3] != wire.ObjMagic[3] {
			if metrics != nil {
				metrics.ResyncEvent()
			}
			pos++
			continue
		}

		bh, err := wire.ParseBlockHeader(hdrBuf)
		if err != nil {
			return nil, err
		}
		if bh.HeaderType != wire.HeaderTypeDefault {
			pos += advance(bh)
			continue
		}

		if bh.ObjectType == wire.ObjTypeLogContainer {
			lchBuf := make([]byte, wire.LogContainerHeaderSize)
			if err := readFull(src, pos+int64(bh.HeaderLength), lchBuf); err != nil {
				if err == io.EOF {
					break
				}
				return nil, err
			}
			lch, err := wire.ParseLogContainerHeader(lchBuf)
			if err != nil {
				return nil, err
			}

			dataStart := pos + int64(bh.HeaderLength) + wire.LogContainerHeaderSize
			d := &Descriptor{
				InfileStartPos:    pos,
				InfileLength:      int64(bh.ObjectLength),
				InfileDataStart:   dataStart,
				RealStartPos:      virtualPos,
				RealLength:        int64(lch.UncompressedSize),
				CompressionMethod: lch.CompressionMethod,
			}
			if d.CompressionMethod != wire.CompressionNone && d.CompressionMethod != wire.CompressionDeflate {
				return nil, blferr.Newf(blferr.KindUnsupported, "log container compression method %d", d.CompressionMethod)
			}
			objEnd := pos + d.InfileLength
			if dataStart > objEnd || (d.CompressionMethod == wire.CompressionNone && dataStart+d.RealLength > objEnd) {
				return nil, blferr.Newf(blferr.KindUnsupported, "log container at %d: data range exceeds object_length %d", pos, bh.ObjectLength)
			}

			idx.descriptors = append(idx.descriptors, d)
			virtualPos += d.RealLength
			if metrics != nil {
				metrics.ContainerScanned()
			}
		}

		pos += advance(bh)
	}

	return idx, nil
}

// advance is the physical cursor step from one top-level object to the
// next: the larger of the declared object length and header length, with
// a 16-byte floor matching the smallest possible block header.
func advance(bh wire.BlockHeader) int64 {
	n := int64(bh.ObjectLength)
	if int64(bh.HeaderLength) > n {
		n = int64(bh.HeaderLength)
	}
	if n < wire.BlockHeaderSize {
		n = wire.BlockHeaderSize
	}
	return n
}
