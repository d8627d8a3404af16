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

// linHeaderSize is this reader's fixed layout for LIN_MESSAGE:
// channel(2) id(1) dlc(1) data[8] crc(1) dir(1) reserved(2).
const linHeaderSize = 16

// LINMessage translates LIN_MESSAGE into an 8-byte format-revision header
// plus up to 8 payload bytes.
func LINMessage() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, linHeaderSize, "LIN_MESSAGE"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload

		channel := binary.LittleEndian.Uint16(p[0:2])
		id := p[2] & 0x3f
		dlc := p[3] & 0x0f
		crc := p[12]
		dir := p[13]

		payloadLen := int(dlc)
		if payloadLen > 8 {
			payloadLen = 8
		}

		out := make([]byte, 8+payloadLen)
		out[0] = 1 // format revision
		out[4] = dlc << 4
		out[5] = id
		out[6] = crc
		copy(out[8:], p[4:4+payloadLen])
		*buf = append(*buf, out...)

		rec := initRecord(env, obj, recordtype.EncapLIN, channel, iface.NoHardwareChannel, "", len(out), len(out))
		rec.Options = recordtype.WithDirection(rec.Options, directionFromBLFDir(dir))

		return Result{Record: rec, CaptureLength: len(out)}, true, nil
	}
}
