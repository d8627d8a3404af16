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

import "github.com/13521900025/blfreader/internal/wire"

// Dispatch maps an object_type discriminant to the Translator that
// handles it. Object types absent from this table are skipped by the
// caller with a warning; that skip is the caller's responsibility, not
// this package's, since it also needs to interrupt any in-progress
// AppText METADATA sequence on the skip.
var Dispatch = map[int]Translator{
	wire.ObjTypeCANMessage:  CANMessage(false),
	wire.ObjTypeCANMessage2: CANMessage(true),
	wire.ObjTypeCANError:    CANError(),
	wire.ObjTypeCANErrorExt: CANErrorExt(),

	wire.ObjTypeCANFDMessage:      CANFDMessage(false),
	wire.ObjTypeCANFDMessage64:    CANFDMessage(true),
	wire.ObjTypeCANFDErrorFrame64: CANErrorExt(),

	wire.ObjTypeEthernetFrame:   EthernetFrame(),
	wire.ObjTypeEthernetFrameEx: EthernetFrameEx(),
	wire.ObjTypeEthernetStatus:  EthernetStatus(),

	wire.ObjTypeWLANFrame: WLANFrame(),

	wire.ObjTypeFlexRayData:         FlexRayData(),
	wire.ObjTypeFlexRayMessage:      FlexRayMessage(),
	wire.ObjTypeFlexRayRcvMessage:   FlexRayRcvMessage(false),
	wire.ObjTypeFlexRayRcvMessageEx: FlexRayRcvMessage(true),

	wire.ObjTypeLINMessage: LINMessage(),

	wire.ObjTypeAppText: AppText(),
}

// InterruptsAppText reports whether dispatching objType should discard
// an in-progress AppText METADATA aggregation before translating it.
// Only AppText objects themselves carry their own, sub-source-aware
// interrupt logic; every other object type interrupts unconditionally.
func InterruptsAppText(objType int) bool {
	return objType != wire.ObjTypeAppText
}
