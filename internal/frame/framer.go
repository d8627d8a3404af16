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

// Package frame slices the decompressed virtual byte stream into
// individual log objects: it locates the LOBJ magic, decodes the block
// header and whichever of the three object-header variants it declares,
// and hands back the object's payload span for translation. It never
// decodes a payload itself.
package frame

import (
	"io"

	"github.com/13521900025/blfreader/internal/blferr"
	"github.com/13521900025/blfreader/internal/wire"
)

// VirtualSource is the read side of the container cache that the framer
// consumes; container.Cache satisfies it.
type VirtualSource interface {
	ReadVirtual(pos int64, out []byte) error
	VirtualSize() int64
}

// Object is one framed log object: its header fields plus the exact
// payload span, ready for a translator in internal/xlate to decode.
type Object struct {
	// Pos is the virtual offset of the object's LOBJ magic.
	Pos int64
	// Next is the virtual offset of the following object, already
	// advanced past any padding this object's header_length/object_length
	// declared.
	Next int64

	ObjectType    uint32
	HeaderType    uint16
	Flags         uint32
	ObjectVersion uint16
	TimestampRaw  uint64

	// Payload is the object's body, i.e. everything after its header.
	Payload []byte
}

// Framer walks a VirtualSource one object at a time starting at a given
// virtual offset.
type Framer struct {
	src VirtualSource
	pos int64
}

// NewFramer returns a Framer positioned at startPos.
func NewFramer(src VirtualSource, startPos int64) *Framer {
	return &Framer{src: src, pos: startPos}
}

// Seek repositions the framer to read the next object from pos.
func (f *Framer) Seek(pos int64) { f.pos = pos }

// Pos returns the framer's current virtual offset.
func (f *Framer) Pos() int64 { return f.pos }

// Next decodes the object at the framer's current position and advances
// past it. It returns io.EOF when the framer is at the end of the
// virtual stream or when the remaining trailing span is too short to
// hold another block header (trailing padding).
func (f *Framer) Next() (Object, error) {
	var hdrBuf [wire.BlockHeaderSize]byte
	for {
		size := f.src.VirtualSize()
		if f.pos >= size {
			return Object{}, io.EOF
		}
		if f.pos+wire.BlockHeaderSize > size {
			return Object{}, io.EOF
		}

		if err := f.src.ReadVirtual(f.pos, hdrBuf[:]); err != nil {
			return Object{}, err
		}
		if hdrBuf[0] == wire.ObjMagic[0] && hdrBuf[1] == wire.ObjMagic[1] &&
			hdrBuf[2] == wire.ObjMagic[2] && hdrBuf[3] == wire.ObjMagic[3] {
			break
		}
		f.pos++
	}

	bh, err := wire.ParseBlockHeader(hdrBuf[:])
	if err != nil {
		return Object{}, err
	}

	objHdrSize, err := wire.HeaderSizeForType(bh.HeaderType)
	if err != nil {
		return Object{}, err
	}
	if int(bh.HeaderLength) < wire.BlockHeaderSize+objHdrSize {
		return Object{}, blferr.Newf(blferr.KindMalformedObject, "header_length %d too small for header_type %d", bh.HeaderLength, bh.HeaderType)
	}

	objHdrBuf := make([]byte, objHdrSize)
	if err := f.src.ReadVirtual(f.pos+wire.BlockHeaderSize, objHdrBuf); err != nil {
		return Object{}, err
	}

	var oh wire.ObjHeader
	switch bh.HeaderType {
	case 1:
		oh, err = wire.ParseObjHeader1(objHdrBuf)
	case 2:
		oh, err = wire.ParseObjHeader2(objHdrBuf)
	case 3:
		oh, err = wire.ParseObjHeader3(objHdrBuf)
	default:
		err = blferr.Newf(blferr.KindMalformedObject, "unsupported header_type %d", bh.HeaderType)
	}
	if err != nil {
		return Object{}, err
	}

	payloadStart := f.pos + int64(bh.HeaderLength)
	payloadLen := int64(bh.ObjectLength) - int64(bh.HeaderLength)
	if payloadLen < 0 {
		return Object{}, blferr.Newf(blferr.KindMalformedObject, "object_length %d shorter than header_length %d", bh.ObjectLength, bh.HeaderLength)
	}

	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if err := f.src.ReadVirtual(payloadStart, payload); err != nil {
			return Object{}, err
		}
	}

	advance := int64(bh.ObjectLength)
	if int64(bh.HeaderLength) > advance {
		advance = int64(bh.HeaderLength)
	}
	if advance < wire.BlockHeaderSize {
		advance = wire.BlockHeaderSize
	}

	obj := Object{
		Pos:           f.pos,
		Next:          f.pos + advance,
		ObjectType:    bh.ObjectType,
		HeaderType:    bh.HeaderType,
		Flags:         oh.Flags,
		ObjectVersion: oh.ObjectVersion,
		TimestampRaw:  oh.TimestampRaw,
		Payload:       payload,
	}
	f.pos = obj.Next
	return obj, nil
}
