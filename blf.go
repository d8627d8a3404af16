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

// Package blfreader decodes Vector Informatik's Binary Logging Format
// (BLF) — a container format for recorded automotive bus traffic — into
// a stream of protocol-tagged records, without ever materializing the
// whole file in memory.
package blfreader

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/13521900025/blfreader/internal/blferr"
	"github.com/13521900025/blfreader/internal/container"
	"github.com/13521900025/blfreader/internal/frame"
	"github.com/13521900025/blfreader/internal/iface"
	"github.com/13521900025/blfreader/internal/wire"
	"github.com/13521900025/blfreader/internal/xlate"
	"github.com/13521900025/blfreader/observability/log"
	"github.com/13521900025/blfreader/observability/metrics"
	"github.com/13521900025/blfreader/observability/tracing"
)

// Reader decodes one BLF file. It is single-threaded and non-reentrant:
// concurrent calls on the same Reader are not defined. Read advances a
// sequential cursor; SeekRead uses an independent one-shot framer over
// the same container cache and never perturbs Read's cursor.
type Reader struct {
	ID uuid.UUID

	src    *os.File
	cache  *container.Cache
	seqFr  *frame.Framer
	ifaces *iface.Registry
	env    *xlate.Env

	startOffsetNs int64

	metrics *metrics.Collector
	tracer  *tracing.Tracer

	skipped map[uint32]int
}

type warnAdapter struct {
	readerID uuid.UUID
}

func (w warnAdapter) Warn(reason string, fields map[string]interface{}) {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields[log.KeyReason] = reason
	fields["reader_id"] = w.readerID.String()
	log.Warning(context.Background(), reason, fields)
}

// Open reads and validates path's file header, builds the container
// index, and initializes the interface registry. The virtual read
// cursor starts at 0.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := newReader(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func newReader(f *os.File, opts ...Option) (*Reader, error) {
	cfg := defaultOptions()
	for _, o := range opts {
		o(&cfg)
	}

	var ifaceOpts []iface.RegistryOption
	if cfg.ifaceCB != nil {
		ifaceOpts = append(ifaceOpts, iface.WithCallback(cfg.ifaceCB))
	}

	r := &Reader{
		ID:      cfg.id,
		src:     f,
		ifaces:  iface.NewRegistry(ifaceOpts...),
		metrics: cfg.metrics,
		skipped: make(map[uint32]int),
	}
	r.tracer = tracing.NewTracer("blfreader", oteltrace.SpanKindInternal)

	_, span := r.tracer.Start(context.Background(), "Open")
	defer span.End()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	hdrBuf := make([]byte, wire.FileHeaderFixedSize)
	if _, err := f.ReadAt(hdrBuf, 0); err != nil {
		return nil, err
	}
	fh, err := wire.ParseFileHeader(hdrBuf)
	if err != nil {
		return nil, err
	}

	r.startOffsetNs = dateToEpochNs(fh.StartDate)

	var metricsHook container.Metrics
	if r.metrics != nil {
		metricsHook = r.metrics
	}

	idx, err := container.BuildIndex(f, int64(fh.HeaderLength), fi.Size(), metricsHook)
	if err != nil {
		return nil, err
	}
	r.cache = container.NewCache(f, idx, metricsHook)

	warn := cfg.warner
	if warn == nil {
		warn = warnAdapter{readerID: r.ID}
	}
	r.env = &xlate.Env{
		Ifaces:        r.ifaces,
		Warn:          warn,
		StartOffsetNs: r.startOffsetNs,
		AppText:       xlate.NewAppTextState(),
	}

	r.seqFr = frame.NewFramer(r.cache, 0)

	return r, nil
}

// dateToEpochNs converts a BLF file header's SYSTEMTIME-shaped start
// date to a nanosecond UTC epoch base. A zero-valued date (month/day 0,
// as some writers emit) yields a zero offset rather than an error.
func dateToEpochNs(d wire.Date) int64 {
	if d.Year == 0 || d.Month == 0 || d.Day == 0 {
		return 0
	}
	t := time.Date(int(d.Year), time.Month(d.Month), int(d.Day),
		int(d.Hour), int(d.Minute), int(d.Second), int(d.Millisecond)*1_000_000, time.UTC)
	return t.UnixNano()
}

// Read frames one record starting at the current sequential virtual
// cursor, skipping over non-recordable objects (AppText CHANNEL,
// unrecognized object types) without returning to the caller. buf is
// reused: the reshaped frame is appended starting at buf[:0].
// dataOffset is the virtual offset of the first object belonging to the
// returned record, suitable for SeekRead to replay it.
func (r *Reader) Read(buf []byte) (rec Record, out []byte, dataOffset int64, err error) {
	_, span := r.tracer.Start(context.Background(), "Read")
	defer span.End()

	out = buf[:0]
	for {
		obj, ferr := r.seqFr.Next()
		if ferr != nil {
			return Record{}, out, 0, ferr
		}

		res, ok, terr := r.translate(r.env, obj, &out)
		if terr != nil {
			return Record{}, out, 0, terr
		}
		if !ok {
			out = out[:0]
			continue
		}
		return res.Record, out, res.Record.DataOffset, nil
	}
}

// SeekRead frames exactly one record starting at dataOffset, using an
// independent one-shot framer over the shared container cache. It never
// perturbs Read's sequential cursor. Idempotent: calling it twice with
// the same dataOffset yields byte-for-byte identical results, since the
// shared cache's decompressed bytes never change once populated and each
// call aggregates AppText objects with its own fresh state (so a
// TRACELINE record replayed here carries trace-seq 1).
func (r *Reader) SeekRead(dataOffset int64, buf []byte) (rec Record, out []byte, err error) {
	_, span := r.tracer.Start(context.Background(), "SeekRead")
	defer span.End()

	fr := frame.NewFramer(r.cache, dataOffset)
	env := *r.env
	env.AppText = xlate.NewAppTextState()
	out = buf[:0]

	for {
		obj, ferr := fr.Next()
		if ferr != nil {
			return Record{}, out, ferr
		}

		res, ok, terr := r.translate(&env, obj, &out)
		if terr != nil {
			return Record{}, out, terr
		}
		if !ok {
			out = out[:0]
			continue
		}
		return res.Record, out, nil
	}
}

// translate dispatches obj to its Translator, interrupting any
// in-progress AppText METADATA aggregation first unless obj is itself an
// AppText object (whose own sub-source logic decides whether to
// interrupt). A log container nested inside the virtual stream is
// reported as unsupported. Other object types absent from the dispatch
// table are skipped with a warning and counted in SkippedObjectCounts.
func (r *Reader) translate(env *xlate.Env, obj frame.Object, out *[]byte) (xlate.Result, bool, error) {
	if xlate.InterruptsAppText(int(obj.ObjectType)) {
		env.AppText.Interrupt()
	}

	if obj.ObjectType == wire.ObjTypeLogContainer {
		return xlate.Result{}, false, blferr.Newf(blferr.KindUnsupported, "nested log container at virtual offset %d", obj.Pos)
	}

	tr, ok := xlate.Dispatch[int(obj.ObjectType)]
	if !ok {
		r.skipped[obj.ObjectType]++
		env.Warn.Warn("unknown-object-type", map[string]interface{}{
			log.KeyObjectType: obj.ObjectType,
			log.KeyOffset:     obj.Pos,
		})
		return xlate.Result{}, false, nil
	}

	return tr(env, obj, out)
}

// SkippedObjectCounts reports how many objects of each unrecognized
// object_type were skipped so far, keyed by the raw object_type value.
func (r *Reader) SkippedObjectCounts() map[uint32]int {
	out := make(map[uint32]int, len(r.skipped))
	for k, v := range r.skipped {
		out[k] = v
	}
	return out
}

// CacheStats returns the decompression-latency histogram snapshot, or
// the zero Snapshot if the Reader was opened without WithMetrics.
func (r *Reader) CacheStats() metrics.Snapshot {
	if r.metrics == nil {
		return metrics.Snapshot{}
	}
	return r.metrics.Snapshot()
}

// InterfaceName returns the display name assigned to an interface id, or
// "" if no such interface has been registered.
func (r *Reader) InterfaceName(id uint32) string {
	return r.ifaces.Name(id)
}

// InterfaceCount returns the number of distinct interfaces registered so
// far.
func (r *Reader) InterfaceCount() int {
	return r.ifaces.Len()
}

// Close releases the underlying file handle. Decompressed container
// buffers are owned by the cache and freed with it.
func (r *Reader) Close() error {
	return r.src.Close()
}
