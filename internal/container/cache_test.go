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
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/klauspost/compress/flate"
	. "github.com/smartystreets/goconvey/convey"
)

type memSource struct {
	b []byte
}

func (m *memSource) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.b)) {
		return 0, io.EOF
	}
	n := copy(p, m.b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// appendLogContainer appends one LOG_CONTAINER top-level object holding
// payload (raw, pre-compression) to buf, compressing it with DEFLATE
// when compressed is true.
func appendLogContainer(buf []byte, payload []byte, compressed bool) []byte {
	body := payload
	method := uint16(0)
	if compressed {
		var out bytes.Buffer
		fw, _ := flate.NewWriter(&out, flate.DefaultCompression)
		_, _ = fw.Write(payload)
		_ = fw.Close()
		body = out.Bytes()
		method = 2
	}

	objectLength := 16 + 16 + len(body)

	hdr := make([]byte, 16)
	copy(hdr[0:4], []byte("LOBJ"))
	binary.LittleEndian.PutUint16(hdr[4:6], 16) // header_length
	binary.LittleEndian.PutUint16(hdr[6:8], 1)  // header_type
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(objectLength))
	binary.LittleEndian.PutUint32(hdr[12:16], 10) // LOG_CONTAINER

	lch := make([]byte, 16)
	binary.LittleEndian.PutUint16(lch[0:2], method)
	binary.LittleEndian.PutUint32(lch[8:12], uint32(len(payload)))

	buf = append(buf, hdr...)
	buf = append(buf, lch...)
	buf = append(buf, body...)
	return buf
}

func TestBuildIndexAndReadVirtual(t *testing.T) {
	Convey("two containers, one compressed, one not", t, func() {
		raw1 := bytes.Repeat([]byte{0xAB}, 37)
		raw2 := []byte("the quick brown fox jumps over the lazy dog")

		var file []byte
		file = appendLogContainer(file, raw1, true)
		file = appendLogContainer(file, raw2, false)
		// Trailing padding shorter than a block header; must not error.
		file = append(file, make([]byte, 5)...)

		src := &memSource{b: file}
		idx, err := BuildIndex(src, 0, int64(len(file)), nil)
		So(err, ShouldBeNil)
		So(idx.Len(), ShouldEqual, 2)

		Convey("adjacent containers are contiguous in virtual space", func() {
			c0, c1 := idx.At(0), idx.At(1)
			So(c0.RealStartPos+c0.RealLength, ShouldEqual, c1.RealStartPos)
			So(c0.RealLength, ShouldEqual, int64(len(raw1)))
			So(c1.RealLength, ShouldEqual, int64(len(raw2)))
		})

		cache := NewCache(src, idx, nil)

		Convey("virtual read across both containers matches raw concatenation", func() {
			want := append(append([]byte{}, raw1...), raw2...)
			got := make([]byte, len(want))
			So(cache.ReadVirtual(0, got), ShouldBeNil)
			So(got, ShouldResemble, want)
		})

		Convey("first and last byte of a compressed container are both reachable", func() {
			one := make([]byte, 1)
			So(cache.ReadVirtual(0, one), ShouldBeNil)
			So(one[0], ShouldEqual, raw1[0])

			last := idx.At(0).RealLength - 1
			So(cache.ReadVirtual(last, one), ShouldBeNil)
			So(one[0], ShouldEqual, raw1[len(raw1)-1])
		})

		Convey("reading past the end of the virtual space is EOF", func() {
			one := make([]byte, 1)
			err := cache.ReadVirtual(idx.VirtualSize(), one)
			So(err, ShouldEqual, io.EOF)
		})
	})
}
