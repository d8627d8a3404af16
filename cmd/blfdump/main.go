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

// blfdump is a command-line tool that dumps the records of a BLF trace
// file, exercising the blfreader library end to end.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/13521900025/blfreader"
	"github.com/13521900025/blfreader/observability"
	"github.com/13521900025/blfreader/observability/metrics"
)

var (
	configPath string
	formatFlag string
	noColor    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "blfdump: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blfdump <file.blf>",
		Short: "dump the records of a Vector BLF trace file",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a blfdump YAML config file")
	cmd.Flags().StringVar(&formatFlag, "format", "", "output format: table or ndjson (overrides config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored warning output")
	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if formatFlag != "" {
		cfg.Format = formatFlag
	}
	if noColor {
		cfg.Color = false
	}
	color.NoColor = !cfg.Color

	var collector *metrics.Collector
	if cfg.Observability.M.Enable {
		collector = metrics.NewCollector()
	}
	if cfg.Observability.M.Enable || cfg.Observability.T.Enable {
		if err := observability.Initialize(cfg.Observability, "blfdump"); err != nil {
			return fmt.Errorf("init observability: %w", err)
		}
	}

	opts := []blfreader.Option{warnToStderr()}
	if collector != nil {
		opts = append(opts, blfreader.WithMetrics(collector))
	}

	r, err := blfreader.Open(args[0], opts...)
	if err != nil {
		if blfreader.IsNotMine(err) {
			return fmt.Errorf("%s is not a BLF file", args[0])
		}
		return err
	}
	defer r.Close()

	switch cfg.Format {
	case "ndjson":
		err = dumpNDJSON(r)
	default:
		err = dumpTable(r)
	}
	if err != nil {
		return err
	}

	printSkipped(r)
	return nil
}

// warnToStderr routes translator/framer warnings to colored stderr lines
// instead of the default structured logger, since blfdump is a console
// tool rather than a long-running service.
func warnToStderr() blfreader.Option {
	return blfreader.WithWarner(stderrWarner{})
}

type stderrWarner struct{}

func (stderrWarner) Warn(reason string, fields map[string]interface{}) {
	color.Yellow("warning: %s %v", reason, fields)
}

func dumpTable(r *blfreader.Reader) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ts", "encap", "iface", "caplen", "wirelen", "options"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	var buf []byte
	for {
		rec, out, _, err := r.Read(buf)
		buf = out
		if err == blfreader.EOF {
			break
		}
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%d.%09d", rec.TimestampSec, rec.TimestampNsec),
			encapName(rec.Encap),
			r.InterfaceName(rec.InterfaceID),
			rec.CaptureLength,
			rec.WireLength,
			optionsString(rec),
		})
	}
	t.Render()
	return nil
}

func dumpNDJSON(r *blfreader.Reader) error {
	enc := json.NewEncoder(os.Stdout)
	var buf []byte
	for {
		rec, out, _, err := r.Read(buf)
		buf = out
		if err == blfreader.EOF {
			break
		}
		if err != nil {
			return err
		}
		row := map[string]interface{}{
			"ts_sec":  rec.TimestampSec,
			"ts_nsec": rec.TimestampNsec,
			"encap":   encapName(rec.Encap),
			"iface":   r.InterfaceName(rec.InterfaceID),
			"caplen":  rec.CaptureLength,
			"wirelen": rec.WireLength,
			"options": optionsString(rec),
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

func encapName(e blfreader.Encap) string {
	switch e {
	case blfreader.EncapEthernet:
		return "ETHERNET"
	case blfreader.EncapSocketCAN:
		return "SOCKETCAN"
	case blfreader.EncapFlexRay:
		return "FLEXRAY"
	case blfreader.EncapLIN:
		return "LIN"
	case blfreader.EncapIEEE80211:
		return "IEEE_802_11"
	case blfreader.EncapUpperPDU:
		return "UPPER_PDU"
	default:
		return "UNKNOWN"
	}
}

func optionsString(rec blfreader.Record) string {
	if len(rec.Options) == 0 {
		return ""
	}
	s := ""
	for i, o := range rec.Options {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s=%v", o.Key, o.Value)
	}
	return s
}

func printSkipped(r *blfreader.Reader) {
	skipped := r.SkippedObjectCounts()
	if len(skipped) == 0 {
		return
	}
	color.Yellow("skipped unknown object types:")
	for objType, n := range skipped {
		fmt.Fprintf(os.Stderr, "  object_type=%d count=%d\n", objType, n)
	}
}
