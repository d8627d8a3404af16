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

// SocketCAN error-frame constants (linux/can/error.h).
const (
	canErrFlag     = 0x20000000
	canErrProt     = 0x00000008
	canErrAck      = 0x00000020
	canErrDLC      = 8
	canErrProtBit  = 0x01
	canErrProtForm = 0x02
	canErrProtStuff = 0x04
	canErrProtOverload = 0x20
	canErrProtUnspec = 0x00
	canErrProtLocCRCSeq = 0x08
	canErrProtLocACK    = 0x19
)

// CANCORE extended error code bit layout.
const (
	canErrorExtFlagCANCore = 0x00000001
	canErrorExtNotAck      = 0x0001
	canErrorExtTX          = 0x0002
)

// eccMeaning is the top 6 bits of the low byte of errorCodeExt (shifted
// right 6, matching the Vector-ECC-to-SocketCAN mapping table).
type eccMeaning int

const (
	eccBitError eccMeaning = iota + 1
	eccFormError
	eccStuffError
	eccCRCError
	eccNACKError
	eccOverload
)

// canErrorHeaderSize is this reader's fixed layout common to CAN_ERROR,
// CAN_ERROR_EXT and CAN_FD_ERROR_64: channel(2) length(2) flags(4)
// errorCodeExt(2) reserved(2).
const canErrorHeaderSize = 12

// mapECC applies the Vector-ECC-to-SocketCAN mapping table, writing
// into a 16-byte SocketCAN error frame buffer.
func mapECC(out []byte, errorCodeExt uint16) (protoErr, ackErr bool) {
	switch eccMeaning((errorCodeExt >> 6) & 0x3f) {
	case eccBitError:
		protoErr = true
		out[10] = canErrProtBit
	case eccFormError:
		protoErr = true
		out[10] = canErrProtForm
	case eccStuffError:
		protoErr = true
		out[10] = canErrProtStuff
	case eccCRCError:
		protoErr = true
		out[11] = canErrProtLocCRCSeq
	case eccNACKError:
		ackErr = true
		out[11] = canErrProtLocACK
	case eccOverload:
		protoErr = true
		out[10] = canErrProtOverload
	default:
		protoErr = true
		out[10] = canErrProtUnspec
	}
	if errorCodeExt&canErrorExtNotAck == 0 {
		ackErr = true
	}
	if ackErr {
		protoErr = false
	}
	return protoErr, ackErr
}

// canErrorFrame builds the shared 16-byte SocketCAN error frame. cancore
// selects whether errorCodeExt participates (CAN_ERROR has no extended
// code at all and always reports an unspecified error class).
func canErrorFrame(cancore bool, errorCodeExt uint16) []byte {
	out := make([]byte, 16)
	canID := uint32(canErrFlag)
	if cancore {
		protoErr, ackErr := mapECC(out, errorCodeExt)
		if protoErr {
			canID |= canErrProt
		}
		if ackErr {
			canID |= canErrAck
		}
	}
	binary.BigEndian.PutUint32(out[0:4], canID)
	out[4] = canErrDLC
	return out
}

// CANError translates CAN_ERROR: a plain, unspecified error class with no
// CANCORE extended fields.
func CANError() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, canErrorHeaderSize, "CAN_ERROR"); err != nil {
			return Result{}, false, err
		}
		channel := binary.LittleEndian.Uint16(obj.Payload[0:2])

		out := canErrorFrame(false, 0)
		*buf = append(*buf, out...)

		rec := initRecord(env, obj, recordtype.EncapSocketCAN, channel, iface.NoHardwareChannel, "", len(out), len(out))
		return Result{Record: rec, CaptureLength: len(out)}, true, nil
	}
}

// CANErrorExt translates CAN_ERROR_EXT and CAN_FD_ERROR_64, both of which
// carry a CANCORE flag and an extended error code this reader maps to
// SocketCAN's protocol-error fields.
func CANErrorExt() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, canErrorHeaderSize, "CAN_ERROR_EXT"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload
		channel := binary.LittleEndian.Uint16(p[0:2])
		flags := binary.LittleEndian.Uint32(p[4:8])
		errorCodeExt := binary.LittleEndian.Uint16(p[8:10])

		cancore := flags&canErrorExtFlagCANCore != 0
		out := canErrorFrame(cancore, errorCodeExt)
		*buf = append(*buf, out...)

		rec := initRecord(env, obj, recordtype.EncapSocketCAN, channel, iface.NoHardwareChannel, "", len(out), len(out))
		if cancore {
			isTx := errorCodeExt&canErrorExtTX != 0
			rec.Options = recordtype.WithDirection(rec.Options, directionFromRxTx(isTx))
		}
		return Result{Record: rec, CaptureLength: len(out)}, true, nil
	}
}
