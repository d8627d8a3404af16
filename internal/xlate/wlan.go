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

// wlanHeaderSize is this reader's fixed layout for WLAN_FRAME:
// channel(2) direction(2) radio_flags(4) frame_length(2) reserved(6).
const wlanHeaderSize = 16

// WLANFrame translates WLAN_FRAME, a verbatim copy of frame_length bytes.
func WLANFrame() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, wlanHeaderSize, "WLAN_FRAME"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload

		channel := binary.LittleEndian.Uint16(p[0:2])
		direction := binary.LittleEndian.Uint16(p[2:4])
		frameLen := int(binary.LittleEndian.Uint16(p[8:10]))

		rest := p[wlanHeaderSize:]
		if frameLen > len(rest) {
			return Result{}, false, requirePayload(obj, wlanHeaderSize+frameLen, "WLAN_FRAME")
		}

		*buf = append(*buf, rest[:frameLen]...)

		rec := initRecord(env, obj, recordtype.EncapIEEE80211, channel, iface.NoHardwareChannel, "", frameLen, frameLen)
		rec.Options = recordtype.WithDirection(rec.Options, directionFromBLFDir(uint8(direction)))

		return Result{Record: rec, CaptureLength: frameLen}, true, nil
	}
}
