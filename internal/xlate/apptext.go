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
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/13521900025/blfreader/internal/frame"
	"github.com/13521900025/blfreader/internal/iface"
	"github.com/13521900025/blfreader/internal/recordtype"
)

// appTextHeaderSize is this reader's fixed layout for APP_TEXT:
// source(4) reservedAppText1(4) textLength(4) reservedAppText2(4).
const appTextHeaderSize = 16

// AppText sub-sources.
const (
	appTextSourceChannel    = 0
	appTextSourceMetadata   = 1
	appTextSourceComment    = 2
	appTextSourceAttachment = 3
	appTextSourceTraceLine  = 4
)

// Bus-type values carried in reservedAppText1 bits [16:24] for a CHANNEL
// object, in the order the dissector enumerates them.
const (
	appTextBusCAN = iota + 1
	appTextBusFlexRay
	appTextBusLIN
	appTextBusEthernet
	appTextBusWLAN
)

func busTypeEncap(busType byte) recordtype.Encap {
	switch busType {
	case appTextBusCAN:
		return recordtype.EncapSocketCAN
	case appTextBusFlexRay:
		return recordtype.EncapFlexRay
	case appTextBusLIN:
		return recordtype.EncapLIN
	case appTextBusEthernet:
		return recordtype.EncapEthernet
	case appTextBusWLAN:
		return recordtype.EncapIEEE80211
	default:
		return recordtype.EncapUnknown
	}
}

// Single-byte tags this reader prefixes onto the reconstructed text blob,
// standing in for the dissector-name/info-column pair the format carries
// per sub-source.
const (
	appTextTagMetadata   = 1
	appTextTagComment    = 2
	appTextTagAttachment = 3
	appTextTagTraceLine  = 4
)

// AppTextState holds the in-progress METADATA aggregation buffer and the
// running TRACELINE sequence counter across a Framer's lifetime. One
// instance belongs to one Env; it must not be shared across files read
// concurrently.
type AppTextState struct {
	active   bool
	buf      []byte
	first    frame.Object
	traceSeq uint32
}

// NewAppTextState returns a fresh, idle aggregator.
func NewAppTextState() *AppTextState {
	return &AppTextState{}
}

func (s *AppTextState) reset() {
	s.active = false
	s.buf = s.buf[:0]
}

// AppText translates APP_TEXT. Most sub-sources yield one record each;
// METADATA spans one or more consecutive objects and yields a record only
// once the declared length (low 24 bits of reservedAppText1) stops
// exceeding the current object's own text length, mirroring
// the dissector's metadata_cont bookkeeping. Any non-METADATA AppText
// object, or any other object type, interrupting an in-progress METADATA
// sequence discards its accumulated buffer; callers are responsible for
// invoking Interrupt when dispatching a non-AppText object.
func AppText() Translator {
	return func(env *Env, obj frame.Object, buf *[]byte) (Result, bool, error) {
		if err := requirePayload(obj, appTextHeaderSize, "APP_TEXT"); err != nil {
			return Result{}, false, err
		}
		p := obj.Payload
		source := binary.LittleEndian.Uint32(p[0:4])
		reserved1 := binary.LittleEndian.Uint32(p[4:8])
		textLength := binary.LittleEndian.Uint32(p[8:12])

		if source != appTextSourceMetadata && env.AppText != nil && env.AppText.active {
			env.AppText.reset()
		}

		rest := p[appTextHeaderSize:]
		textLen := int(textLength)
		if textLen > len(rest) {
			textLen = len(rest)
		}
		text := rest[:textLen]

		switch source {
		case appTextSourceChannel:
			tokens := strings.Split(string(text), ";")
			if len(tokens) < 2 {
				return Result{}, false, nil
			}
			channel := uint16((reserved1 >> 8) & 0xff)
			busType := byte((reserved1 >> 16) & 0xff)
			env.Ifaces.Lookup(busTypeEncap(busType), channel, iface.NoHardwareChannel, tokens[1])
			return Result{}, false, nil

		case appTextSourceMetadata:
			st := env.AppText
			if st == nil {
				return Result{}, false, nil
			}
			if !st.active {
				st.active = true
				st.buf = st.buf[:0]
				st.first = obj
			}
			st.buf = append(st.buf, text...)

			if reserved1&0x00ffffff > textLength {
				return Result{}, false, nil
			}

			out := append([]byte{appTextTagMetadata}, st.buf...)
			*buf = append(*buf, out...)
			rec := initRecord(env, st.first, recordtype.EncapUpperPDU, 0, iface.NoHardwareChannel, "", len(out), len(out))
			st.reset()
			return Result{Record: rec, CaptureLength: len(out)}, true, nil

		case appTextSourceComment, appTextSourceAttachment, appTextSourceTraceLine:
			// The text can embed a NUL before textLength bytes; the
			// dissector only keeps the bytes up to the first one.
			trimmed := text
			if i := bytes.IndexByte(trimmed, 0); i >= 0 {
				trimmed = trimmed[:i]
			}
			tag := byte(appTextTagComment)
			if source == appTextSourceAttachment {
				tag = appTextTagAttachment
			} else if source == appTextSourceTraceLine {
				tag = appTextTagTraceLine
			}
			out := append([]byte{tag}, trimmed...)
			*buf = append(*buf, out...)
			rec := initRecord(env, obj, recordtype.EncapUpperPDU, 0, iface.NoHardwareChannel, "", len(out), len(out))
			if source == appTextSourceTraceLine && env.AppText != nil {
				env.AppText.traceSeq++
				rec.Options = recordtype.WithTraceSeq(rec.Options, env.AppText.traceSeq)
			}
			return Result{Record: rec, CaptureLength: len(out)}, true, nil

		default:
			return Result{}, false, nil
		}
	}
}

// Interrupt discards an in-progress METADATA aggregation. The dispatcher
// calls this before translating any object that isn't itself an AppText
// METADATA continuation, matching the dissector's reset of metadata_cont
// when a non-APP_TEXT object, or a differently sourced AppText object,
// breaks the sequence.
func (s *AppTextState) Interrupt() {
	if s == nil || !s.active {
		return
	}
	s.reset()
}
