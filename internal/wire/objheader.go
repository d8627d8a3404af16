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

package wire

import (
	"encoding/binary"

	"github.com/13521900025/blfreader/internal/blferr"
)

// Timestamp status/flags carried by every log-object header variant.
const (
	TimestampUnitTenMicroseconds = 1
	TimestampUnitNanoseconds     = 2
)

// ObjHeader is the subset of the three on-disk log-object header variants
// that the core consumes: flags and the raw timestamp. object_version is
// carried through verbatim for translators that branch on payload shape
// by format revision.
type ObjHeader struct {
	Flags         uint32
	ObjectVersion uint16
	TimestampRaw  uint64
}

// ParseObjHeader1 decodes header_type==1: flags, client index, object
// version, 64-bit timestamp.
func ParseObjHeader1(buf []byte) (ObjHeader, error) {
	if len(buf) < 16 {
		return ObjHeader{}, blferr.New(blferr.KindMalformedObject, "short log object header (variant 1)")
	}
	return ObjHeader{
		Flags:         binary.LittleEndian.Uint32(buf[0:4]),
		ObjectVersion: binary.LittleEndian.Uint16(buf[6:8]),
		TimestampRaw:  binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}

// ParseObjHeader2 decodes header_type==2: flags, timestamp status, object
// version, timestamp, original timestamp. Only the first timestamp is
// consumed by the core.
func ParseObjHeader2(buf []byte) (ObjHeader, error) {
	if len(buf) < 24 {
		return ObjHeader{}, blferr.New(blferr.KindMalformedObject, "short log object header (variant 2)")
	}
	return ObjHeader{
		Flags:         binary.LittleEndian.Uint32(buf[0:4]),
		ObjectVersion: binary.LittleEndian.Uint16(buf[6:8]),
		TimestampRaw:  binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}

// ParseObjHeader3 decodes header_type==3: flags, static size, object
// version, timestamp.
func ParseObjHeader3(buf []byte) (ObjHeader, error) {
	if len(buf) < 16 {
		return ObjHeader{}, blferr.New(blferr.KindMalformedObject, "short log object header (variant 3)")
	}
	return ObjHeader{
		Flags:         binary.LittleEndian.Uint32(buf[0:4]),
		ObjectVersion: binary.LittleEndian.Uint16(buf[6:8]),
		TimestampRaw:  binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}

// HeaderSizeForType returns how many bytes follow the 16-byte block
// header for a given header_type, used only as a sanity lower bound —
// the real extent is always header_length from the block header.
func HeaderSizeForType(headerType uint16) (int, error) {
	switch headerType {
	case 1:
		return 16, nil
	case 2:
		return 24, nil
	case 3:
		return 16, nil
	default:
		return 0, blferr.Newf(blferr.KindMalformedObject, "unsupported header_type %d", headerType)
	}
}

// ResolveTimestamp converts a raw timestamp plus its unit flag to
// nanoseconds since startOffsetNs. An unknown flag value yields a zero
// timestamp rather than aborting the stream.
func ResolveTimestamp(flags uint32, raw uint64, startOffsetNs int64) (ns int64, isNsec bool) {
	switch flags {
	case TimestampUnitTenMicroseconds:
		return int64(raw)*10_000 + startOffsetNs, false
	case TimestampUnitNanoseconds:
		return int64(raw) + startOffsetNs, true
	default:
		return 0, true
	}
}
