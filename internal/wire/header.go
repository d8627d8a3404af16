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

// Package wire holds the fixed-layout on-disk structures of a BLF file —
// the file header, the log-container header, the LOBJ block header and
// the three log-object header variants — together with their
// fix-endianness step. Every multi-byte field is little-endian on disk;
// conversion to host order happens here, once, immediately after the
// bytes are read, so no other package ever touches raw file bytes.
package wire

import (
	"encoding/binary"

	"github.com/13521900025/blfreader/internal/blferr"
)

// FileMagic is the 4-byte signature at offset 0 of every BLF file.
var FileMagic = [4]byte{'L', 'O', 'G', 'G'}

// ObjMagic is the 4-byte signature at the start of every block header.
var ObjMagic = [4]byte{'L', 'O', 'B', 'J'}

const (
	// FileHeaderFixedSize is the portion of the file header this reader
	// models explicitly; header_length (read from the file itself) is
	// authoritative for where the first object begins, so any vendor
	// padding past this fixed prefix is skipped rather than mismodeled.
	FileHeaderFixedSize = 72

	dateSize = 16
)

// Date is the fixed SYSTEMTIME-shaped timestamp embedded in the file
// header (start date / end date).
type Date struct {
	Year       uint16
	Month      uint16
	DayOfWeek  uint16
	Day        uint16
	Hour       uint16
	Minute     uint16
	Second     uint16
	Millisecond uint16
}

func parseDate(buf []byte) Date {
	return Date{
		Year:        binary.LittleEndian.Uint16(buf[0:2]),
		Month:       binary.LittleEndian.Uint16(buf[2:4]),
		DayOfWeek:   binary.LittleEndian.Uint16(buf[4:6]),
		Day:         binary.LittleEndian.Uint16(buf[6:8]),
		Hour:        binary.LittleEndian.Uint16(buf[8:10]),
		Minute:      binary.LittleEndian.Uint16(buf[10:12]),
		Second:      binary.LittleEndian.Uint16(buf[12:14]),
		Millisecond: binary.LittleEndian.Uint16(buf[14:16]),
	}
}

// FileHeader is the fixed prefix of a BLF file.
type FileHeader struct {
	HeaderLength       uint32
	FileSizeCompressed  uint64
	FileSizeUncompressed uint64
	ObjectCount        uint32
	ObjectsRead        uint32
	StartDate          Date
	EndDate            Date
}

// ParseFileHeader validates the magic and decodes the fixed prefix of a
// BLF file header from buf, which must be at least FileHeaderFixedSize
// bytes. Fields are converted from little-endian to host order in place.
func ParseFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) < FileHeaderFixedSize {
		return FileHeader{}, blferr.New(blferr.KindMalformedObject, "short file header")
	}
	if buf[0] != FileMagic[0] || buf[1] != FileMagic[1] || buf[2] != FileMagic[2] || buf[3] != FileMagic[3] {
		return FileHeader{}, blferr.New(blferr.KindNotMine, "file magic mismatch")
	}
	h := FileHeader{
		HeaderLength:         binary.LittleEndian.Uint32(buf[4:8]),
		FileSizeCompressed:   binary.LittleEndian.Uint64(buf[8:16]),
		FileSizeUncompressed: binary.LittleEndian.Uint64(buf[16:24]),
		ObjectCount:          binary.LittleEndian.Uint32(buf[24:28]),
		ObjectsRead:          binary.LittleEndian.Uint32(buf[28:32]),
		StartDate:            parseDate(buf[32 : 32+dateSize]),
		EndDate:              parseDate(buf[32+dateSize : 32+2*dateSize]),
	}
	return h, nil
}

// BlockHeaderSize is the size of the 16-byte LOBJ block header.
const BlockHeaderSize = 16

// BlockHeader is the universal header at the start of every object:
// magic, header_length, header_type, object_length, object_type.
type BlockHeader struct {
	HeaderLength uint16
	HeaderType   uint16
	ObjectLength uint32
	ObjectType   uint32
}

// HeaderTypeDefault is the only header_type legal at the top level.
const HeaderTypeDefault = 1

// ParseBlockHeader decodes a 16-byte block header. The caller is
// responsible for locating the LOBJ magic first (see frame.Framer).
func ParseBlockHeader(buf []byte) (BlockHeader, error) {
	if len(buf) < BlockHeaderSize {
		return BlockHeader{}, blferr.New(blferr.KindMalformedObject, "short block header")
	}
	return BlockHeader{
		HeaderLength: binary.LittleEndian.Uint16(buf[4:6]),
		HeaderType:   binary.LittleEndian.Uint16(buf[6:8]),
		ObjectLength: binary.LittleEndian.Uint32(buf[8:12]),
		ObjectType:   binary.LittleEndian.Uint32(buf[12:16]),
	}, nil
}

// LogContainerHeaderSize is the size of the container payload header
// that immediately follows a LOG_CONTAINER block header.
const LogContainerHeaderSize = 16

// LogContainerHeader describes how a log container's payload is stored.
type LogContainerHeader struct {
	CompressionMethod uint16
	UncompressedSize  uint32
}

const (
	CompressionNone    = 0
	CompressionDeflate = 2
)

func ParseLogContainerHeader(buf []byte) (LogContainerHeader, error) {
	if len(buf) < LogContainerHeaderSize {
		return LogContainerHeader{}, blferr.New(blferr.KindMalformedObject, "short log container header")
	}
	return LogContainerHeader{
		CompressionMethod: binary.LittleEndian.Uint16(buf[0:2]),
		UncompressedSize:  binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}
