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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/13521900025/blfreader/internal/blferr"
)

func TestParseFileHeader(t *testing.T) {
	Convey("valid magic parses the fixed prefix", t, func() {
		buf := make([]byte, FileHeaderFixedSize)
		copy(buf[0:4], FileMagic[:])
		binary.LittleEndian.PutUint32(buf[4:8], 144)
		binary.LittleEndian.PutUint64(buf[8:16], 1000)
		binary.LittleEndian.PutUint64(buf[16:24], 2000)
		binary.LittleEndian.PutUint32(buf[24:28], 5)

		fh, err := ParseFileHeader(buf)
		So(err, ShouldBeNil)
		So(fh.HeaderLength, ShouldEqual, uint32(144))
		So(fh.FileSizeCompressed, ShouldEqual, uint64(1000))
		So(fh.FileSizeUncompressed, ShouldEqual, uint64(2000))
		So(fh.ObjectCount, ShouldEqual, uint32(5))
	})

	Convey("wrong magic is not-mine", t, func() {
		buf := make([]byte, FileHeaderFixedSize)
		copy(buf[0:4], []byte("XXXX"))
		_, err := ParseFileHeader(buf)
		So(err, ShouldNotBeNil)
		So(blferr.Is(err, blferr.KindNotMine), ShouldBeTrue)
	})

	Convey("short buffer is malformed", t, func() {
		_, err := ParseFileHeader(make([]byte, 10))
		So(err, ShouldNotBeNil)
		So(blferr.Is(err, blferr.KindMalformedObject), ShouldBeTrue)
	})
}

func TestParseBlockHeader(t *testing.T) {
	Convey("decodes header_length, header_type, object_length, object_type", t, func() {
		buf := make([]byte, BlockHeaderSize)
		copy(buf[0:4], ObjMagic[:])
		binary.LittleEndian.PutUint16(buf[4:6], 32)
		binary.LittleEndian.PutUint16(buf[6:8], 1)
		binary.LittleEndian.PutUint32(buf[8:12], 40)
		binary.LittleEndian.PutUint32(buf[12:16], 1)

		bh, err := ParseBlockHeader(buf)
		So(err, ShouldBeNil)
		So(bh.HeaderLength, ShouldEqual, uint16(32))
		So(bh.HeaderType, ShouldEqual, uint16(1))
		So(bh.ObjectLength, ShouldEqual, uint32(40))
		So(bh.ObjectType, ShouldEqual, uint32(1))
	})
}

func TestResolveTimestamp(t *testing.T) {
	Convey("nsec flag yields nanosecond precision", t, func() {
		ns, isNsec := ResolveTimestamp(TimestampUnitNanoseconds, 1_000_000_000, 0)
		So(isNsec, ShouldBeTrue)
		So(ns, ShouldEqual, int64(1_000_000_000))
	})

	Convey("10us flag converts to nanoseconds and offsets by start_offset_ns", t, func() {
		ns, isNsec := ResolveTimestamp(TimestampUnitTenMicroseconds, 3, 500)
		So(isNsec, ShouldBeFalse)
		So(ns, ShouldEqual, int64(3*10_000+500))
	})

	Convey("unknown flag yields a zero timestamp rather than aborting", t, func() {
		ns, isNsec := ResolveTimestamp(99, 123, 500)
		So(isNsec, ShouldBeTrue)
		So(ns, ShouldEqual, int64(0))
	})
}
