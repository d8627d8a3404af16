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

	"github.com/13521900025/blfreader/internal/frame"
	"github.com/13521900025/blfreader/internal/iface"
	"github.com/13521900025/blfreader/internal/recordtype"
)

// CAN message flags, carried in the byte at offset 2 of the header.
const (
	canFlagRTR = 0x01
	canFlagTX  = 0x02
)

// canHeaderSize is the fixed header of CAN_MESSAGE/CAN_MESSAGE2 in this
// reader's layout: channel(2) flags(1) dlc(1) id(4). The 8-byte data
// field follows it.
const canHeaderSize = 8

// canMessage2TrailerSize is CAN_MESSAGE2's extra frameLength_in_ns(4) +
// reserved(2)+reserved(2) trailer following the fixed 8-byte payload. The
// values aren't used for anything; only their presence is validated.
const canMessage2TrailerSize = 8

// CANMessage translates CAN_MESSAGE and, when message2 is true,
// CAN_MESSAGE2, which additionally carries an 8-byte trailer after the
// payload that this reader validates is present but otherwise ignores.
func CANMessage(message2 bool) Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, canHeaderSize, "CAN_MESSAGE"); err != nil {
			return Result{}, false, err
		}
		if message2 {
			if err := requirePayload(obj, canHeaderSize+8+canMessage2TrailerSize, "CAN_MESSAGE2"); err != nil {
				return Result{}, false, err
			}
		}
		p := obj.Payload

		channel := binary.LittleEndian.Uint16(p[0:2])
		flags := p[2]
		dlc := p[3] & 0x0f
		id := binary.LittleEndian.Uint32(p[4:8])

		payloadLen := int(dlc)
		if payloadLen > 8 {
			env.warn("dlc-exceeds-8", map[string]interface{}{"object_type": obj.ObjectType, "dlc": dlc})
			payloadLen = 8
		}

		canID := id
		if flags&canFlagRTR != 0 {
			canID |= 0x80000000 // CAN_RTR_FLAG
			payloadLen = 0
		}

		rest := p[canHeaderSize:]
		if len(rest) < payloadLen {
			payloadLen = len(rest)
		}

		out := make([]byte, 8+payloadLen)
		binary.BigEndian.PutUint32(out[0:4], canID)
		out[4] = byte(payloadLen)
		if payloadLen > 0 {
			copy(out[8:], rest[:payloadLen])
		}
		*buf = append(*buf, out...)

		rec := initRecord(env, obj, recordtype.EncapSocketCAN, channel, iface.NoHardwareChannel, "", len(out), len(out))
		rec.Options = recordtype.WithDirection(rec.Options, directionFromRxTx(flags&canFlagTX != 0))

		return Result{Record: rec, CaptureLength: len(out)}, true, nil
	}
}
