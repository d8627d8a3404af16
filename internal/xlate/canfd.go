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

// canDLCToLength maps a classical CAN DLC (0-15, clamped to 8) to a byte
// count.
var canDLCToLength = [16]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 8, 8, 8, 8, 8, 8, 8}

// canFDDLCToLength maps a CAN-FD DLC (0-15) to a byte count.
var canFDDLCToLength = [16]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20, 24, 32, 48, 64}

const (
	canFDFlagEDL         = 0x01
	canFDFlagRemoteFrame = 0x02
)

// canFDHeaderSize is this reader's fixed layout for CAN_FD_MESSAGE and
// CAN_FD_MESSAGE_64: channel(2) flags(1) dlc(1) canfdflags(1) validDataBytes(1)
// reserved(2) id(4) dir(1) reserved2(3).
const canFDHeaderSize = 16

// CANFDMessage translates CAN_FD_MESSAGE and CAN_FD_MESSAGE_64. The two
// share a payload shape in this reader's model; direction for the 64-bit
// variant comes from an explicit dir field rather than a TX flag.
func CANFDMessage(is64 bool) Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, canFDHeaderSize, "CAN_FD_MESSAGE"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload

		channel := binary.LittleEndian.Uint16(p[0:2])
		flags := p[2]
		dlc := p[3] & 0x0f
		fdFlags := p[4]
		validDataBytes := int(p[5])
		id := binary.LittleEndian.Uint32(p[8:12])
		dir := p[12]

		isFD := fdFlags&canFDFlagEDL != 0

		var wireLen int
		if isFD {
			wireLen = canFDDLCToLength[dlc]
		} else {
			if dlc > 8 {
				env.warn("dlc-exceeds-8", map[string]interface{}{"object_type": obj.ObjectType, "dlc": dlc})
			}
			wireLen = canDLCToLength[dlc]
		}

		capLen := wireLen
		if capLen > validDataBytes {
			capLen = validDataBytes
		}

		canID := id
		if !isFD && flags&canFDFlagRemoteFrame != 0 {
			canID |= 0x80000000
			capLen = 0
		}

		rest := p[canFDHeaderSize:]
		if capLen > len(rest) {
			capLen = len(rest)
		}

		out := make([]byte, 8+capLen)
		binary.BigEndian.PutUint32(out[0:4], canID)
		out[4] = byte(capLen)
		if capLen > 0 {
			copy(out[8:], rest[:capLen])
		}
		*buf = append(*buf, out...)

		rec := initRecord(env, obj, recordtype.EncapSocketCAN, channel, iface.NoHardwareChannel, "", 8+capLen, 8+wireLen)
		if is64 {
			rec.Options = recordtype.WithDirection(rec.Options, directionFromBLFDir(dir))
		} else {
			rec.Options = recordtype.WithDirection(rec.Options, directionFromRxTx(flags&canFlagTX != 0))
		}

		return Result{Record: rec, CaptureLength: 8 + capLen}, true, nil
	}
}
