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

package xlate

import (
	"encoding/binary"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/13521900025/blfreader/internal/frame"
	"github.com/13521900025/blfreader/internal/iface"
)

func ethernetFramePayload(dst, src [6]byte, tpid, tci, ethtype uint16, payload []byte, channel, direction uint16) []byte {
	p := make([]byte, ethernetHeaderSize+len(payload))
	copy(p[0:6], dst[:])
	copy(p[6:12], src[:])
	binary.BigEndian.PutUint16(p[12:14], tpid)
	binary.BigEndian.PutUint16(p[14:16], tci)
	binary.BigEndian.PutUint16(p[16:18], ethtype)
	binary.LittleEndian.PutUint16(p[18:20], uint16(len(payload)))
	binary.LittleEndian.PutUint16(p[20:22], channel)
	binary.LittleEndian.PutUint16(p[22:24], direction)
	copy(p[ethernetHeaderSize:], payload)
	return p
}

func TestEthernetFrame(t *testing.T) {
	dst := [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	src := [6]byte{0x11, 0x12, 0x13, 0x14, 0x15, 0x16}
	body := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	Convey("an untagged frame reassembles dst, src, ethtype and payload", t, func() {
		env := &Env{Ifaces: iface.NewRegistry()}
		payload := ethernetFramePayload(dst, src, 0, 0, 0x0800, body, 1, 1)
		obj := frame.Object{Payload: payload}

		var buf []byte
		res, ok, err := EthernetFrame()(env, obj, &buf)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
		So(len(buf), ShouldEqual, 14+len(body))
		So(buf[0:6], ShouldResemble, dst[:])
		So(buf[6:12], ShouldResemble, src[:])
		So(binary.BigEndian.Uint16(buf[12:14]), ShouldEqual, uint16(0x0800))
		So(buf[14:], ShouldResemble, body)
		So(res.CaptureLength, ShouldEqual, len(buf))
	})

	Convey("a VLAN-tagged frame carries tpid and tci ahead of ethtype", t, func() {
		env := &Env{Ifaces: iface.NewRegistry()}
		payload := ethernetFramePayload(dst, src, 0x8100, 0x0005, 0x0800, body, 1, 2)
		obj := frame.Object{Payload: payload}

		var buf []byte
		_, _, err := EthernetFrame()(env, obj, &buf)
		So(err, ShouldBeNil)
		So(len(buf), ShouldEqual, 18+len(body))
		So(binary.BigEndian.Uint16(buf[12:14]), ShouldEqual, uint16(0x8100))
		So(binary.BigEndian.Uint16(buf[14:16]), ShouldEqual, uint16(0x0005))
		So(binary.BigEndian.Uint16(buf[16:18]), ShouldEqual, uint16(0x0800))
		So(buf[18:], ShouldResemble, body)
	})

	Convey("a declared payload length longer than the available bytes is clamped", t, func() {
		warned := false
		env := &Env{
			Ifaces: iface.NewRegistry(),
			Warn:   warnFunc(func(reason string, fields map[string]interface{}) { warned = true }),
		}
		payload := ethernetFramePayload(dst, src, 0, 0, 0x0800, body, 1, 1)
		// Lie about the payload length in the header.
		binary.LittleEndian.PutUint16(payload[18:20], uint16(len(body)+100))
		obj := frame.Object{Payload: payload}

		var buf []byte
		_, _, err := EthernetFrame()(env, obj, &buf)
		So(err, ShouldBeNil)
		So(warned, ShouldBeTrue)
		So(len(buf), ShouldEqual, 14+len(body))
	})
}
