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

// Package xlate reshapes a framed log object's raw payload into a
// canonical on-the-wire frame plus the metadata that becomes a Record.
// Every translator shares the same shape: validate the payload is long
// enough for its fixed header, decode that header, compute a destination
// byte layout, append it to the caller's scratch buffer, then append the
// remaining raw payload bytes verbatim.
package xlate

import (
	"github.com/13521900025/blfreader/internal/blferr"
	"github.com/13521900025/blfreader/internal/frame"
	"github.com/13521900025/blfreader/internal/iface"
	"github.com/13521900025/blfreader/internal/recordtype"
	"github.com/13521900025/blfreader/internal/wire"
)

// Warner receives non-fatal warnings (unknown object skip, DLC clamps,
// payload clamps, and so on). The Reader's default implementation
// forwards them to observability/log.Warning; a nil Warner drops them.
type Warner interface {
	Warn(reason string, fields map[string]interface{})
}

// Env is the shared context every translator needs: the interface
// registry, an optional warning sink, and the nanosecond epoch base used
// to resolve each object's timestamp.
type Env struct {
	Ifaces        *iface.Registry
	Warn          Warner
	StartOffsetNs int64
	AppText       *AppTextState
}

func (e *Env) warn(reason string, fields map[string]interface{}) {
	if e.Warn != nil {
		e.Warn.Warn(reason, fields)
	}
}

// Result is what a translator hands back: a fully populated Record plus
// the number of bytes it appended to buf.
type Result struct {
	Record        recordtype.Record
	CaptureLength int
}

// Translator decodes one object's payload, appends the reshaped frame to
// buf, and returns the resulting Record fragment. ok is false for
// AppText sub-sources that yield no record (e.g. CHANNEL metadata).
type Translator func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error)

// initRecord builds the common Record fields every translator shares:
// timestamp resolution, encap, and interface id lookup.
func initRecord(env *Env, obj frame.Object, encap recordtype.Encap, channel, hwChannel uint16, name string, capLen, wireLen int) recordtype.Record {
	ns, isNsec := wire.ResolveTimestamp(obj.Flags, obj.TimestampRaw, env.StartOffsetNs)
	prec := recordtype.PrecisionNsec
	if !isNsec {
		prec = recordtype.PrecisionTenMicros
	}
	ifID := env.Ifaces.Lookup(encap, channel, hwChannel, name)
	return recordtype.Record{
		TimestampSec:   ns / 1_000_000_000,
		TimestampNsec:  ns % 1_000_000_000,
		Precision:      prec,
		CaptureLength:  capLen,
		WireLength:     wireLen,
		Encap:          encap,
		InterfaceID:    ifID,
		RelativeTimeNs: ns - env.StartOffsetNs,
		DataOffset:     obj.Pos,
	}
}

// requirePayload checks the object's payload is at least n bytes,
// returning malformed-object otherwise.
func requirePayload(obj frame.Object, n int, what string) error {
	if len(obj.Payload) < n {
		return blferr.Newf(blferr.KindMalformedObject, "%s: payload too short (%d < %d)", what, len(obj.Payload), n)
	}
	return nil
}

func directionFromRxTx(isTx bool) recordtype.Direction {
	if isTx {
		return recordtype.DirectionOutbound
	}
	return recordtype.DirectionInbound
}

// Raw BLF_DIR_* values carried by several object types' explicit dir
// field (Ethernet, WLAN, FlexRay, LIN, CAN-FD-64).
const (
	blfDirRX   = 1
	blfDirTX   = 2
	blfDirTXRQ = 3
)

// directionFromBLFDir maps a raw BLF_DIR_* value to the direction option
// vocabulary, matching blf_add_direction_option's RX->inbound,
// TX/TX_RQ->outbound, else unknown.
func directionFromBLFDir(raw uint8) recordtype.Direction {
	switch raw {
	case blfDirRX:
		return recordtype.DirectionInbound
	case blfDirTX, blfDirTXRQ:
		return recordtype.DirectionOutbound
	default:
		return recordtype.DirectionUnknown
	}
}
