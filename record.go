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

package blfreader

import "github.com/13521900025/blfreader/internal/recordtype"

// Encap names how a record's payload should be interpreted downstream.
type Encap = recordtype.Encap

const (
	EncapUnknown   = recordtype.EncapUnknown
	EncapEthernet  = recordtype.EncapEthernet
	EncapSocketCAN = recordtype.EncapSocketCAN
	EncapFlexRay   = recordtype.EncapFlexRay
	EncapLIN       = recordtype.EncapLIN
	EncapIEEE80211 = recordtype.EncapIEEE80211
	EncapUpperPDU  = recordtype.EncapUpperPDU
)

// Precision is the resolution of a record's timestamp.
type Precision = recordtype.Precision

const (
	PrecisionNsec      = recordtype.PrecisionNsec
	PrecisionTenMicros = recordtype.PrecisionTenMicros
)

// Direction is the carried `direction` option value.
type Direction = recordtype.Direction

const (
	DirectionUnknown  = recordtype.DirectionUnknown
	DirectionInbound  = recordtype.DirectionInbound
	DirectionOutbound = recordtype.DirectionOutbound
)

// OptionKey names an entry in a Record's option list. The list is
// additive: new keys may appear without breaking existing consumers.
type OptionKey = recordtype.OptionKey

const (
	OptionDirection   = recordtype.OptionDirection
	OptionPacketQueue = recordtype.OptionPacketQueue
	OptionTraceSeq    = recordtype.OptionTraceSeq
)

// Record is the metadata the reader produces for one payload. Payload
// bytes themselves live in the caller-supplied scratch buffer passed to
// Read/SeekRead; Record never holds them.
type Record = recordtype.Record

// RecordDirection returns r's direction option, or DirectionUnknown if
// none was set.
func RecordDirection(r *Record) Direction {
	for _, o := range r.Options {
		if o.Key == OptionDirection {
			if d, ok := o.Value.(Direction); ok {
				return d
			}
		}
	}
	return DirectionUnknown
}
