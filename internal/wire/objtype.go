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

package wire

// Top-level object_type discriminants. LogContainer is load-bearing for
// the container index; the rest are consumed by internal/xlate.
const (
	ObjTypeLogContainer = 10

	ObjTypeCANMessage        = 1
	ObjTypeCANError          = 2
	ObjTypeCANMessage2       = 86
	ObjTypeCANErrorExt       = 73
	ObjTypeCANFDMessage      = 101
	ObjTypeCANFDMessage64    = 104
	ObjTypeCANFDErrorFrame64 = 105

	ObjTypeEthernetFrame   = 71
	ObjTypeEthernetFrameEx = 103
	ObjTypeEthernetStatus  = 111

	ObjTypeWLANFrame = 90

	ObjTypeFlexRayData         = 40
	ObjTypeFlexRayMessage      = 41
	ObjTypeFlexRayRcvMessage   = 42
	ObjTypeFlexRayRcvMessageEx = 43

	ObjTypeLINMessage = 20

	ObjTypeAppText = 65
)
