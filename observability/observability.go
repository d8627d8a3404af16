// Copyright 2022 Linkall Inc.
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

// Package observability wires up the optional metrics and tracing blocks
// read from cmd/blfdump's config file. Neither is required to use the
// reader as a library; both exist purely for the CLI to demonstrate them.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/13521900025/blfreader/observability/metrics"
	"github.com/13521900025/blfreader/observability/tracing"
)

// Initialize starts the Prometheus metrics HTTP endpoint (if enabled) and
// installs the package-level tracer provider (if enabled).
func Initialize(cfg Config, serverName string) error {
	if cfg.M.Enable {
		metrics.Register()
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			_ = http.ListenAndServe(fmt.Sprintf(":%d", cfg.M.GetPort()), nil)
		}()
	}
	if cfg.T.Enable {
		tracing.Init(tracing.Config{ServerName: serverName, Enable: true})
	}
	return nil
}

type Config struct {
	M Metrics `yaml:"metrics"`
	T Tracing `yaml:"tracing"`
}

type Metrics struct {
	Enable bool `yaml:"enable"`
	Port   int  `yaml:"port"`
}

func (m Metrics) GetPort() int {
	if m.Port == 0 {
		return 2112
	}
	return m.Port
}

type Tracing struct {
	Enable bool `yaml:"enable"`
}
