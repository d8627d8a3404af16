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

// ethernetHeaderSize is this reader's fixed layout for ETHERNET_FRAME:
// dst[6] src[6] tpid(2) tci(2) ethtype(2) payloadlength(2) channel(2)
// direction(2). There is no hardware-channel field.
const ethernetHeaderSize = 24

// plausibleVLANTPIDs are the tag protocol ids worth reassembling as a
// VLAN tag; anything else nonzero is passed through with a warning
// rather than rejected, matching the original's lenient posture.
var plausibleVLANTPIDs = map[uint16]bool{0x8100: true, 0x88a8: true, 0x9100: true}

// EthernetFrame translates ETHERNET_FRAME, reconstructing the wire order
// the format breaks apart: dst | src | [tpid tci] | ethtype | payload.
func EthernetFrame() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, ethernetHeaderSize, "ETHERNET_FRAME"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload

		var dst, src [6]byte
		copy(dst[:], p[0:6])
		copy(src[:], p[6:12])
		tpid := binary.BigEndian.Uint16(p[12:14])
		tci := binary.BigEndian.Uint16(p[14:16])
		ethtype := binary.BigEndian.Uint16(p[16:18])
		payloadLen := int(binary.LittleEndian.Uint16(p[18:20]))
		channel := binary.LittleEndian.Uint16(p[20:22])
		direction := binary.LittleEndian.Uint16(p[22:24])

		tagged := tpid != 0 && tci != 0
		if tpid != 0 && !plausibleVLANTPIDs[tpid] {
			env.warn("implausible-vlan-tpid", map[string]interface{}{"tpid": tpid})
		}

		headerLen := 14
		if tagged {
			headerLen = 18
		}

		rest := p[ethernetHeaderSize:]
		if payloadLen > len(rest) {
			env.warn("ethernet-payload-clamped", map[string]interface{}{"declared": payloadLen, "available": len(rest)})
			payloadLen = len(rest)
		}

		out := make([]byte, headerLen+payloadLen)
		copy(out[0:6], dst[:])
		copy(out[6:12], src[:])
		if tagged {
			binary.BigEndian.PutUint16(out[12:14], tpid)
			binary.BigEndian.PutUint16(out[14:16], tci)
			binary.BigEndian.PutUint16(out[16:18], ethtype)
		} else {
			binary.BigEndian.PutUint16(out[12:14], ethtype)
		}
		copy(out[headerLen:], rest[:payloadLen])
		*buf = append(*buf, out...)

		rec := initRecord(env, obj, recordtype.EncapEthernet, channel, iface.NoHardwareChannel, "", len(out), len(out))
		rec.Options = recordtype.WithDirection(rec.Options, directionFromBLFDir(uint8(direction)))

		return Result{Record: rec, CaptureLength: len(out)}, true, nil
	}
}

// ethernetExHeaderSize is this reader's fixed layout for
// ETHERNET_FRAME_EX: structSize(2) flags(2) channel(2) hw_channel(2)
// frame_duration(4) frame_checksum(4) frame_length(2) reserved(2)
// frame_handle(4) direction(2) reserved2(2).
const ethernetExHeaderSize = 28

// EthernetFrameEx translates ETHERNET_FRAME_EX, a verbatim frame copy
// with no wire-order reconstruction needed.
func EthernetFrameEx() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, ethernetExHeaderSize, "ETHERNET_FRAME_EX"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload

		channel := binary.LittleEndian.Uint16(p[4:6])
		hwChannel := binary.LittleEndian.Uint16(p[6:8])
		frameLen := int(binary.LittleEndian.Uint16(p[16:18]))
		direction := binary.LittleEndian.Uint16(p[24:26])

		rest := p[ethernetExHeaderSize:]
		if frameLen > len(rest) {
			env.warn("ethernet-payload-clamped", map[string]interface{}{"declared": frameLen, "available": len(rest)})
			frameLen = len(rest)
		}

		*buf = append(*buf, rest[:frameLen]...)

		rec := initRecord(env, obj, recordtype.EncapEthernet, channel, hwChannel, "", frameLen, frameLen)
		rec.Options = recordtype.WithPacketQueue(rec.Options, hwChannel)
		rec.Options = recordtype.WithDirection(rec.Options, directionFromBLFDir(uint8(direction)))

		return Result{Record: rec, CaptureLength: frameLen}, true, nil
	}
}
