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

// Package tracing wraps an in-process reader's Open/Read/SeekRead calls
// in OpenTelemetry spans; container pulls are not traced. Unlike a
// server, this library never dials
// a collector itself: Init wires a stdout exporter when tracing is
// enabled and a no-op provider otherwise, leaving collector export to
// whatever process embeds the reader.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/13521900025/blfreader/observability/log"
)

// Config controls whether tracing is active and under what name spans
// are grouped.
type Config struct {
	ServerName string `yaml:"-"`
	Enable     bool   `yaml:"enable"`
}

var tp *tracerProvider

// Init installs the package-level tracer provider. Called once by
// observability.Initialize; safe to call with Enable=false, which yields
// a no-op provider.
func Init(cfg Config) {
	if cfg.ServerName == "" {
		log.Info(context.Background(), "tracing name is empty, ignored", nil)
		return
	}
	p := &tracerProvider{serverName: cfg.ServerName}
	if !cfg.Enable {
		p.p = oteltrace.NewNoopTracerProvider()
		tp = p
		return
	}

	provider, err := newTracerProvider(p.serverName)
	if err != nil {
		panic("init tracer error: " + err.Error())
	}
	p.p = provider
	tp = p
}

type tracerProvider struct {
	p          oteltrace.TracerProvider
	serverName string
}

// Tracer is a named span factory for one package/component.
type Tracer struct {
	tracer     oteltrace.Tracer
	kind       oteltrace.SpanKind
	moduleName string
}

// Start opens a span named "<moduleName>/<methodName>".
func (t *Tracer) Start(ctx context.Context, methodName string, opts ...oteltrace.SpanStartOption) (context.Context, oteltrace.Span) {
	return t.tracer.Start(ctx, strings.Join([]string{t.moduleName, methodName}, "/"),
		append(opts, oteltrace.WithSpanKind(t.kind))...)
}

// NewTracer returns a Tracer for moduleName, falling back to a no-op
// provider if Init was never called (e.g. in tests).
func NewTracer(moduleName string, kind oteltrace.SpanKind) *Tracer {
	if tp == nil {
		return &Tracer{
			tracer:     oteltrace.NewNoopTracerProvider().Tracer(moduleName),
			kind:       kind,
			moduleName: moduleName,
		}
	}
	return &Tracer{
		tracer:     tp.p.Tracer(moduleName),
		kind:       kind,
		moduleName: moduleName,
	}
}

func newTracerProvider(serviceName string) (*trace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		return nil, err
	}

	provider := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithResource(res),
		trace.WithSpanProcessor(trace.NewBatchSpanProcessor(exporter)),
	)
	return provider, nil
}
