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

package iface

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/13521900025/blfreader/internal/recordtype"
)

func TestRegistryLookup(t *testing.T) {
	Convey("ids are dense and stable across repeated lookups", t, func() {
		r := NewRegistry()

		id0 := r.Lookup(recordtype.EncapSocketCAN, 3, NoHardwareChannel, "")
		id1 := r.Lookup(recordtype.EncapEthernet, 1, NoHardwareChannel, "")
		id0Again := r.Lookup(recordtype.EncapSocketCAN, 3, NoHardwareChannel, "")

		So(id0, ShouldEqual, uint32(0))
		So(id1, ShouldEqual, uint32(1))
		So(id0Again, ShouldEqual, id0)
		So(r.Len(), ShouldEqual, 2)
	})

	Convey("distinct hardware channels on the same channel number don't collide", t, func() {
		r := NewRegistry()
		a := r.Lookup(recordtype.EncapEthernet, 0, 1, "")
		b := r.Lookup(recordtype.EncapEthernet, 0, 2, "")
		So(a, ShouldNotEqual, b)
		So(r.Len(), ShouldEqual, 2)
	})

	Convey("an explicit name overrides synthesis only on first sight", t, func() {
		r := NewRegistry()
		id := r.Lookup(recordtype.EncapSocketCAN, 5, NoHardwareChannel, "my-can-bus")
		So(r.Name(id), ShouldEqual, "my-can-bus")

		r.Lookup(recordtype.EncapSocketCAN, 5, NoHardwareChannel, "ignored")
		So(r.Name(id), ShouldEqual, "my-can-bus")
	})

	Convey("name synthesis matches the encapsulation family", t, func() {
		r := NewRegistry()

		ethNoHw := r.Lookup(recordtype.EncapEthernet, 2, NoHardwareChannel, "")
		So(r.Name(ethNoHw), ShouldEqual, "ETH-2")

		ethHw := r.Lookup(recordtype.EncapEthernet, 2, 7, "")
		So(r.Name(ethHw), ShouldEqual, "ETH-2-7")

		wlan := r.Lookup(recordtype.EncapIEEE80211, 1, NoHardwareChannel, "")
		So(r.Name(wlan), ShouldEqual, "WLAN-1")

		fr := r.Lookup(recordtype.EncapFlexRay, 4, NoHardwareChannel, "")
		So(r.Name(fr), ShouldEqual, "FR-4")

		lin := r.Lookup(recordtype.EncapLIN, 0, NoHardwareChannel, "")
		So(r.Name(lin), ShouldEqual, "LIN-0")

		can := r.Lookup(recordtype.EncapSocketCAN, 9, NoHardwareChannel, "")
		So(r.Name(can), ShouldEqual, "CAN-9")
	})

	Convey("an unregistered id has no name", t, func() {
		r := NewRegistry()
		So(r.Name(42), ShouldEqual, "")
	})

	Convey("the callback fires once per new interface with the fixed resolution and snaplen", t, func() {
		var calls []string
		cb := func(encap Encap, timeUnitsPerSecond uint64, tsresol uint8, snaplen uint32, name string) {
			So(timeUnitsPerSecond, ShouldEqual, uint64(TimeUnitsPerSecond))
			So(tsresol, ShouldEqual, uint8(Tsresol))
			So(snaplen, ShouldEqual, uint32(StandardSnaplen))
			calls = append(calls, name)
		}
		r := NewRegistry(WithCallback(cb))

		r.Lookup(recordtype.EncapSocketCAN, 1, NoHardwareChannel, "")
		r.Lookup(recordtype.EncapSocketCAN, 1, NoHardwareChannel, "")
		r.Lookup(recordtype.EncapEthernet, 0, NoHardwareChannel, "renamed")

		So(calls, ShouldResemble, []string{"CAN-1", "renamed"})
	})
}
