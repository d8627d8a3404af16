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
	"encoding/binary"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/13521900025/blfreader/internal/wire"
)

// appendObjHeader1 appends a header_type==1 log object (16-byte block
// header, 16-byte object header, then payload) to buf.
func appendObjHeader1(buf []byte, objectType uint32, flags uint32, timestampRaw uint64, payload []byte) []byte {
	headerLen := uint16(32)
	objectLen := uint32(int(headerLen) + len(payload))

	blockHdr := make([]byte, 16)
	copy(blockHdr[0:4], wire.ObjMagic[:])
	binary.LittleEndian.PutUint16(blockHdr[4:6], headerLen)
	binary.LittleEndian.PutUint16(blockHdr[6:8], 1)
	binary.LittleEndian.PutUint32(blockHdr[8:12], objectLen)
	binary.LittleEndian.PutUint32(blockHdr[12:16], objectType)

	objHdr := make([]byte, 16)
	binary.LittleEndian.PutUint32(objHdr[0:4], flags)
	binary.LittleEndian.PutUint64(objHdr[8:16], timestampRaw)

	buf = append(buf, blockHdr...)
	buf = append(buf, objHdr...)
	buf = append(buf, payload...)
	return buf
}

func canMessagePayload(channel uint16, dlc byte, id uint32, data []byte) []byte {
	p := make([]byte, 16)
	binary.LittleEndian.PutUint16(p[0:2], channel)
	p[3] = dlc
	binary.LittleEndian.PutUint32(p[4:8], id)
	copy(p[8:], data)
	return p
}

// appendLogContainer wraps the already-framed objects in raw as one
// uncompressed LOG_CONTAINER top-level object.
func appendLogContainer(buf []byte, raw []byte) []byte {
	objectLen := uint32(16 + 16 + len(raw))

	blockHdr := make([]byte, 16)
	copy(blockHdr[0:4], wire.ObjMagic[:])
	binary.LittleEndian.PutUint16(blockHdr[4:6], 16)
	binary.LittleEndian.PutUint16(blockHdr[6:8], 1)
	binary.LittleEndian.PutUint32(blockHdr[8:12], objectLen)
	binary.LittleEndian.PutUint32(blockHdr[12:16], wire.ObjTypeLogContainer)

	containerHdr := make([]byte, 16)
	binary.LittleEndian.PutUint32(containerHdr[8:12], uint32(len(raw)))

	buf = append(buf, blockHdr...)
	buf = append(buf, containerHdr...)
	buf = append(buf, raw...)
	return buf
}

func buildFile(t *testing.T, objects []byte) string {
	t.Helper()
	file := make([]byte, wire.FileHeaderFixedSize)
	copy(file[0:4], wire.FileMagic[:])
	binary.LittleEndian.PutUint32(file[4:8], wire.FileHeaderFixedSize)

	file = appendLogContainer(file, objects)

	f, err := os.CreateTemp(t.TempDir(), "*.blf")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(file); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func TestReaderReadEndToEnd(t *testing.T) {
	Convey("a file with one classical CAN frame reads back one record", t, func() {
		data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
		payload := canMessagePayload(3, 8, 0x7E0, data)
		var objects []byte
		objects = appendObjHeader1(objects, wire.ObjTypeCANMessage, wire.TimestampUnitNanoseconds, 1_000_000_000, payload)

		path := buildFile(t, objects)
		r, err := Open(path)
		So(err, ShouldBeNil)
		defer r.Close()

		var buf []byte
		rec, out, dataOffset, err := r.Read(buf)
		So(err, ShouldBeNil)
		So(rec.Encap, ShouldEqual, EncapSocketCAN)
		So(rec.TimestampSec, ShouldEqual, int64(1))
		So(out[4], ShouldEqual, byte(8))
		So(dataOffset, ShouldEqual, rec.DataOffset)

		_, _, _, err = r.Read(buf)
		So(err, ShouldEqual, EOF)
	})

	Convey("SeekRead replays the same record Read produced at its offset", t, func() {
		data := []byte{0xAA, 0xBB}
		payload := canMessagePayload(1, 2, 0x100, data)
		var objects []byte
		objects = appendObjHeader1(objects, wire.ObjTypeCANMessage, wire.TimestampUnitNanoseconds, 500, payload)

		path := buildFile(t, objects)
		r, err := Open(path)
		So(err, ShouldBeNil)
		defer r.Close()

		rec1, out1, offset, err := r.Read(nil)
		So(err, ShouldBeNil)

		rec2, out2, err := r.SeekRead(offset, nil)
		So(err, ShouldBeNil)
		So(rec2.TimestampSec, ShouldEqual, rec1.TimestampSec)
		So(rec2.TimestampNsec, ShouldEqual, rec1.TimestampNsec)
		So(out2, ShouldResemble, out1)
	})

	Convey("opening a non-BLF file is reported as not-mine", t, func() {
		f, err := os.CreateTemp(t.TempDir(), "*.bin")
		So(err, ShouldBeNil)
		_, err = f.Write(make([]byte, wire.FileHeaderFixedSize))
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		_, err = Open(f.Name())
		So(err, ShouldNotBeNil)
		So(IsNotMine(err), ShouldBeTrue)
	})
}
