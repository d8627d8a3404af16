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
	"math/bits"

	"github.com/13521900025/blfreader/internal/frame"
	"github.com/13521900025/blfreader/internal/iface"
	"github.com/13521900025/blfreader/internal/recordtype"
)

// Measurement-header channel/state bits for the 7-byte FlexRay prefix.
const (
	flexRayChannelB = 0x02
	flexRayPPI      = 0x02
	flexRaySFI      = 0x04
	flexRayNFI      = 0x08
	flexRaySTFI     = 0x10
)

// flexRayDataHeaderSize is this reader's fixed layout for FLEXRAY_DATA:
// channel(2) dir(2) messageId(2) crc(2) len(2) mux(2).
const flexRayDataHeaderSize = 12

// flexRayMessageHeaderSize is this reader's fixed layout for
// FLEXRAY_MESSAGE: channel(2) dir(2) frameId(2) frameState(2)
// headerCrc(2) length(2) cycle(2).
const flexRayMessageHeaderSize = 14

// flexRayRcvMessageHeaderSize is this reader's fixed layout for
// FLEXRAY_RCVMESSAGE[_EX]: channelMask(2) dir(2) frameId(2) data(2)
// headerCrc1(2) cycle(2) payloadLength(2) payloadLengthValid(2).
const flexRayRcvMessageHeaderSize = 16

// flexRayRcvMessageExExtra is the additional fixed extent
// FLEXRAY_RCVMESSAGE_EX carries past the base receive-message header.
const flexRayRcvMessageExExtra = 40

// measurementHeader builds the shared 7-byte FlexRay measurement+frame
// header. channelB selects B (true) or A (false). stateFlags carries the
// already-mapped PPI/SFI/NFI/STFI bits for byte 2.
func measurementHeader(channelB bool, frameID uint16, stateFlags byte, length uint16, crc uint16, cycleOrMux byte) []byte {
	tmpbuf := make([]byte, 7)
	if channelB {
		tmpbuf[0] = flexRayChannelB
	}
	tmpbuf[1] = 0
	tmpbuf[2] = byte((0x0700&frameID)>>8) | stateFlags
	tmpbuf[3] = byte(0x00ff & frameID)
	tmpbuf[4] = byte(0xfe&length) | byte((crc&0x0400)>>10)
	tmpbuf[5] = byte((0x03fc & crc) >> 2)
	tmpbuf[6] = byte((0x0003&crc)<<6) | (0x3f & cycleOrMux)
	return tmpbuf
}

// FlexRayData translates FLEXRAY_DATA.
func FlexRayData() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, flexRayDataHeaderSize, "FLEXRAY_DATA"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload
		channel := binary.LittleEndian.Uint16(p[0:2])
		messageID := binary.LittleEndian.Uint16(p[4:6])
		crc := binary.LittleEndian.Uint16(p[6:8])
		length := binary.LittleEndian.Uint16(p[8:10])
		mux := binary.LittleEndian.Uint16(p[10:12])

		if length&0x01 == 0x01 {
			env.warn("flexray-odd-length", map[string]interface{}{"length": length})
		}
		if channel != 0 && channel != 1 {
			env.warn("flexray-channel-not-0-or-1", map[string]interface{}{"channel": channel})
		}

		hdr := measurementHeader(channel != 0, messageID, 0x20, length, crc, byte(mux))
		return emitFlexRay(env, obj, buf, hdr, channel, int(length), p[flexRayDataHeaderSize:])
	}
}

// FlexRayMessage translates FLEXRAY_MESSAGE.
func FlexRayMessage() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, flexRayMessageHeaderSize, "FLEXRAY_MESSAGE"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload
		channel := binary.LittleEndian.Uint16(p[0:2])
		frameID := binary.LittleEndian.Uint16(p[4:6])
		frameState := binary.LittleEndian.Uint16(p[6:8])
		headerCrc := binary.LittleEndian.Uint16(p[8:10])
		length := binary.LittleEndian.Uint16(p[10:12])
		cycle := binary.LittleEndian.Uint16(p[12:14])

		if length&0x01 == 0x01 {
			env.warn("flexray-odd-length", map[string]interface{}{"length": length})
		}
		if channel != 0 && channel != 1 {
			env.warn("flexray-channel-not-0-or-1", map[string]interface{}{"channel": channel})
		}

		var stateFlags byte
		if frameState&flexRayPPI != 0 {
			stateFlags |= flexRayPPI
		}
		if frameState&flexRaySFI != 0 {
			stateFlags |= flexRaySFI
		}
		if frameState&flexRayNFI == 0 {
			// NFI is inverted relative to the source.
			stateFlags |= flexRayNFI
		}
		if frameState&flexRaySTFI != 0 {
			stateFlags |= flexRaySTFI
		}

		hdr := measurementHeader(channel != 0, frameID, stateFlags, length, headerCrc, byte(cycle))
		return emitFlexRay(env, obj, buf, hdr, channel, int(length), p[flexRayMessageHeaderSize:])
	}
}

// FlexRayRcvMessage translates FLEXRAY_RCVMESSAGE and, when ext is true,
// FLEXRAY_RCVMESSAGE_EX, which carries an additional 40-byte block
// between the base header and the payload; this reader skips it
// without decoding it.
func FlexRayRcvMessage(ext bool) Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		headerSize := flexRayRcvMessageHeaderSize
		if err := requirePayload(obj, headerSize, "FLEXRAY_RCVMESSAGE"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload
		channelMask := binary.LittleEndian.Uint16(p[0:2])
		frameID := binary.LittleEndian.Uint16(p[4:6])
		data := binary.LittleEndian.Uint16(p[6:8])
		headerCrc1 := binary.LittleEndian.Uint16(p[8:10])
		cycle := binary.LittleEndian.Uint16(p[10:12])
		payloadLength := binary.LittleEndian.Uint16(p[12:14])
		payloadLengthValid := binary.LittleEndian.Uint16(p[14:16])

		if payloadLength&0x01 == 0x01 {
			env.warn("flexray-odd-length", map[string]interface{}{"length": payloadLength})
		}
		if bits.OnesCount16(channelMask) != 1 {
			env.warn("flexray-channel-mask-ambiguous", map[string]interface{}{"channel_mask": channelMask})
		}

		channel := lowestSetBitChannel(channelMask)

		var stateFlags byte
		if data&0x0002 != 0 { // payload preamble indicator
			stateFlags |= flexRayPPI
		}
		if data&0x0001 != 0 { // sync frame indicator
			stateFlags |= flexRaySFI
		}
		if data&0x0004 == 0 { // null frame indicator, inverted
			stateFlags |= flexRayNFI
		}
		if data&0x0008 != 0 { // startup frame indicator
			stateFlags |= flexRaySTFI
		}

		hdr := measurementHeader(channel != 0, frameID, stateFlags, payloadLength, headerCrc1, byte(cycle))

		payloadStart := headerSize
		if ext {
			payloadStart += flexRayRcvMessageExExtra
		}
		if len(p) < payloadStart {
			return Result{}, false, requirePayload(obj, payloadStart, "FLEXRAY_RCVMESSAGE_EX")
		}

		capLen := int(payloadLengthValid)
		rest := p[payloadStart:]
		if capLen > len(rest) {
			env.warn("flexray-payload-clamped", map[string]interface{}{"declared": capLen, "available": len(rest)})
			capLen = len(rest)
		}

		out := append(hdr, rest[:capLen]...)
		*buf = append(*buf, out...)

		rec := initRecord(env, obj, recordtype.EncapFlexRay, channel, iface.NoHardwareChannel, "", len(hdr)+capLen, len(hdr)+int(payloadLength))
		return Result{Record: rec, CaptureLength: len(hdr) + capLen}, true, nil
	}
}

func lowestSetBitChannel(mask uint16) uint16 {
	if mask == 0 {
		return 0
	}
	for i := uint16(0); i < 16; i++ {
		if mask&(1<<i) != 0 {
			return i
		}
	}
	return 0
}

func emitFlexRay(env *Env, obj frame.Object, buf *[]byte, hdr []byte, channel uint16, declaredLen int, payload []byte) (Result, bool, error) {
	capLen := declaredLen
	if capLen > len(payload) {
		env.warn("flexray-payload-clamped", map[string]interface{}{"declared": capLen, "available": len(payload)})
		capLen = len(payload)
	}
	out := append(append([]byte{}, hdr...), payload[:capLen]...)
	*buf = append(*buf, out...)

	rec := initRecord(env, obj, recordtype.EncapFlexRay, channel, iface.NoHardwareChannel, "", len(out), len(hdr)+declaredLen)
	return Result{Record: rec, CaptureLength: len(out)}, true, nil
}
