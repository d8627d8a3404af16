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
	"github.com/13521900025/blfreader/internal/recordtype"
	"github.com/13521900025/blfreader/internal/wire"
)

func canMessagePayload(channel uint16, flags, dlc byte, id uint32, data []byte) []byte {
	p := make([]byte, canHeaderSize+8)
	binary.LittleEndian.PutUint16(p[0:2], channel)
	p[2] = flags
	p[3] = dlc
	binary.LittleEndian.PutUint32(p[4:8], id)
	copy(p[8:], data)
	return p
}

func TestCANMessage(t *testing.T) {
	Convey("classical CAN frame round-trips to a SocketCAN wire frame", t, func() {
		env := &Env{Ifaces: iface.NewRegistry()}
		data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
		payload := canMessagePayload(3, 0, 8, 0x7E0, data)
		obj := frame.Object{
			ObjectType:   1,
			Flags:        wire.TimestampUnitNanoseconds,
			TimestampRaw: 1_000_000_000,
			Payload:      payload,
		}

		var buf []byte
		res, ok, err := CANMessage(false)(env, obj, &buf)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)

		want := []byte{0x00, 0x00, 0x07, 0xE0, 0x08, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
		So(buf, ShouldResemble, want)
		So(res.Record.Encap, ShouldEqual, recordtype.EncapSocketCAN)
		So(res.Record.TimestampSec, ShouldEqual, int64(1))
		So(res.Record.TimestampNsec, ShouldEqual, int64(0))
		So(res.CaptureLength, ShouldEqual, 16)
	})

	Convey("a DLC above 8 is clamped to 8 payload bytes with a warning", t, func() {
		warned := false
		env := &Env{
			Ifaces: iface.NewRegistry(),
			Warn:   warnFunc(func(reason string, fields map[string]interface{}) { warned = true }),
		}
		data := make([]byte, 8)
		payload := canMessagePayload(0, 0, 15, 1, data)
		obj := frame.Object{Payload: payload}

		var buf []byte
		_, ok, err := CANMessage(false)(env, obj, &buf)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
		So(warned, ShouldBeTrue)
		So(buf[4], ShouldEqual, byte(8))
		So(len(buf), ShouldEqual, 16)
	})

	Convey("the RTR flag sets CAN_RTR_FLAG and drops the payload", t, func() {
		env := &Env{Ifaces: iface.NewRegistry()}
		payload := canMessagePayload(0, canFlagRTR, 8, 0x123, make([]byte, 8))
		obj := frame.Object{Payload: payload}

		var buf []byte
		_, _, err := CANMessage(false)(env, obj, &buf)
		So(err, ShouldBeNil)
		id := binary.BigEndian.Uint32(buf[0:4])
		So(id&0x80000000, ShouldNotEqual, uint32(0))
		So(buf[4], ShouldEqual, byte(0))
		So(len(buf), ShouldEqual, 8)
	})

	Convey("CAN_MESSAGE2 requires its 8-byte trailer to be present", t, func() {
		env := &Env{Ifaces: iface.NewRegistry()}
		short := frame.Object{Payload: canMessagePayload(0, 0, 8, 1, make([]byte, 8))}

		var buf []byte
		_, _, err := CANMessage(true)(env, short, &buf)
		So(err, ShouldNotBeNil)

		withTrailer := frame.Object{Payload: append(canMessagePayload(0, 0, 8, 1, make([]byte, 8)), make([]byte, canMessage2TrailerSize)...)}
		buf = nil
		_, ok, err := CANMessage(true)(env, withTrailer, &buf)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)
	})
}

type warnFunc func(reason string, fields map[string]interface{})

func (f warnFunc) Warn(reason string, fields map[string]interface{}) { f(reason, fields) }
