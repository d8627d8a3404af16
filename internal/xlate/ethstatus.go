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
	"fmt"

	"github.com/13521900025/blfreader/internal/frame"
	"github.com/13521900025/blfreader/internal/recordtype"
)

// ethStatusHeaderSize is this reader's fixed layout for ETHERNET_STATUS:
// channel(2) flags(2) linkStatus(1) ethernetPhy(1) duplex(1) mdi(1)
// connector(1) clockMode(1) pairs(1) hardwareChannel(1) bitrate(4).
const ethStatusHeaderSize = 16

// ethStatusHardwareChannelValid marks hardwareChannel as meaningful.
const ethStatusHardwareChannelValid = 0x0001

// ethStatusTag prefixes the reconstructed status blob, standing in for
// the exported-PDU dissector name "blf-ethernetstatus-obj" the way
// appTextTag* stands in for AppText's own dissector names. Distinct from
// the AppText tag range (1-4).
const ethStatusTag = 5

// EthernetStatus translates ETHERNET_STATUS into a synthetic upper-PDU
// record whose first byte is ethStatusTag; no exported-PDU header or
// dissector-name tag is written. The record is carried on its own interface
// (distinct from the matching ETHERNET_FRAME interface, since one
// interface can't mix link types) named STATUS-ETH-<channel>-<hwChannel>.
func EthernetStatus() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, ethStatusHeaderSize, "ETHERNET_STATUS"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload

		channel := binary.LittleEndian.Uint16(p[0:2])
		flags := binary.LittleEndian.Uint16(p[2:4])
		hwChannel := uint16(p[11])

		out := make([]byte, 1+16)
		out[0] = ethStatusTag
		binary.BigEndian.PutUint16(out[1:3], channel)
		binary.BigEndian.PutUint16(out[3:5], flags)
		copy(out[5:13], p[4:12])
		binary.BigEndian.PutUint32(out[13:17], binary.LittleEndian.Uint32(p[12:16]))
		*buf = append(*buf, out...)

		name := fmt.Sprintf("STATUS-ETH-%d-%d", channel, hwChannel)
		rec := initRecord(env, obj, recordtype.EncapUpperPDU, channel, hwChannel, name, len(out), len(out))
		if flags&ethStatusHardwareChannelValid != 0 {
			rec.Options = recordtype.WithPacketQueue(rec.Options, hwChannel)
		}

		return Result{Record: rec, CaptureLength: len(out)}, true, nil
	}
}
