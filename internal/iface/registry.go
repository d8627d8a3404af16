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

// Package iface assigns a stable, monotonically increasing interface id
// to every distinct (encapsulation, channel, hardware channel) triple
// seen while reading a file, the way a pcapng writer assigns interface
// description blocks to SocketCAN/Ethernet/WLAN/FlexRay/LIN sources
// multiplexed in a single capture.
package iface

import (
	"fmt"

	"github.com/13521900025/blfreader/internal/recordtype"
)

// Encap identifies which translator family produced a frame and, absent
// an explicit name, how its interface is named.
type Encap = recordtype.Encap

// NoHardwareChannel marks a key with no meaningful hardware channel,
// matching the sentinel the original format reserves for Ethernet
// objects that don't carry one.
const NoHardwareChannel = 0xFFFF

// TimeUnitsPerSecond, Tsresol and StandardSnaplen are the fixed values
// this reader reports to a Callback for every interface: one nanosecond
// per timestamp tick, and a generous snaplen since every frame is
// captured whole.
const (
	TimeUnitsPerSecond = 1_000_000_000
	Tsresol            = 9
	StandardSnaplen    = 262144
)

// Callback observes a newly registered interface, mirroring the
// interface-description collaborator a pcapng writer calls before
// emitting an Interface Description Block. It returns nothing: the
// Registry's own id remains authoritative, the callback is purely an
// observer.
type Callback func(encap Encap, timeUnitsPerSecond uint64, tsresol uint8, snaplen uint32, name string)

// key mirrors blf_calc_key_value: encapsulation, hardware channel and
// channel packed into one 64-bit value so distinct triples never collide.
func key(encap Encap, channel, hwChannel uint16) int64 {
	return (int64(encap) << 32) | (int64(hwChannel) << 16) | int64(channel)
}

type entry struct {
	id        uint32
	encap     Encap
	channel   uint16
	hwChannel uint16
	name      string
}

// Registry hands out and remembers interface ids for a single Reader.
// Not safe for concurrent use from multiple goroutines without external
// synchronization, matching the single-threaded sequential/random-access
// read model of the reader that owns it.
type Registry struct {
	byKey map[int64]*entry
	order []*entry
	next  uint32
	cb    Callback
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// WithCallback attaches cb, invoked once for every newly registered
// interface, after the name has been finalized (synthesized, or the
// caller's explicit override).
func WithCallback(cb Callback) RegistryOption {
	return func(r *Registry) { r.cb = cb }
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{byKey: make(map[int64]*entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the interface id for (encap, channel, hwChannel),
// assigning a new one on first sight. name, if non-empty, overrides the
// synthesized name for a newly created interface; it has no effect on
// an interface that already exists.
func (r *Registry) Lookup(encap Encap, channel, hwChannel uint16, name string) uint32 {
	k := key(encap, channel, hwChannel)
	if e, ok := r.byKey[k]; ok {
		return e.id
	}

	e := &entry{
		id:        r.next,
		encap:     encap,
		channel:   channel,
		hwChannel: hwChannel,
		name:      name,
	}
	if e.name == "" {
		e.name = synthesizeName(encap, channel, hwChannel)
	}
	r.next++
	r.byKey[k] = e
	r.order = append(r.order, e)

	if r.cb != nil {
		r.cb(encap, TimeUnitsPerSecond, Tsresol, StandardSnaplen, e.name)
	}

	return e.id
}

// Name returns the display name assigned to interface id, or "" if no
// such interface has been registered.
func (r *Registry) Name(id uint32) string {
	for _, e := range r.order {
		if e.id == id {
			return e.name
		}
	}
	return ""
}

// Len returns the number of distinct interfaces registered so far.
func (r *Registry) Len() int { return len(r.order) }

func synthesizeName(encap Encap, channel, hwChannel uint16) string {
	switch encap {
	case recordtype.EncapEthernet:
		if hwChannel == NoHardwareChannel {
			return fmt.Sprintf("ETH-%d", channel)
		}
		return fmt.Sprintf("ETH-%d-%d", channel, hwChannel)
	case recordtype.EncapIEEE80211:
		return fmt.Sprintf("WLAN-%d", channel)
	case recordtype.EncapFlexRay:
		return fmt.Sprintf("FR-%d", channel)
	case recordtype.EncapLIN:
		return fmt.Sprintf("LIN-%d", channel)
	case recordtype.EncapSocketCAN:
		return fmt.Sprintf("CAN-%d", channel)
	default:
		return fmt.Sprintf("ENCAP_%d-%d", int(encap), channel)
	}
}
