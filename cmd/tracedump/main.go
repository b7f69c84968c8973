// Copyright 2024 The Profilo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tracedump reads a single trace file (optionally gzip- or
// LZ4-compressed), interprets it, and prints a summary of the
// reconstructed execution units, blocks, and points to stdout.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gotrace/profilo/trace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var symbolsPath string

	cmd := &cobra.Command{
		Use:   "tracedump <trace-file>",
		Short: "Interpret a trace file and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], symbolsPath)
		},
	}

	cmd.Flags().StringVar(&symbolsPath, "symbols", "", "optional text file of \"hex_addr symbol\" lines for native frame resolution")
	return cmd
}

func runDump(path string, symbolsPath string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("tracedump: %w", err)
	}
	defer f.Close()

	r, err := trace.OpenCompressed(f)
	if err != nil {
		return fmt.Errorf("tracedump: %w", err)
	}

	in := &trace.Interpreter{}
	if symbolsPath != "" {
		symbols, err := loadSymbols(symbolsPath)
		if err != nil {
			return fmt.Errorf("tracedump: %w", err)
		}
		in.Symbols = symbols
	}

	tr, err := in.Interpret(r)
	if err != nil {
		return fmt.Errorf("tracedump: %w", err)
	}

	printSummary(tr)
	return nil
}

func printSummary(tr *trace.Trace) {
	fmt.Printf("trace %s  pid=%s  [%d, %d]\n", tr.ID, tr.PID, tr.Begin, tr.End)
	for _, u := range tr.Units {
		fmt.Printf("  unit %s  %s  blocks=%d\n", u.ID, u.Properties.CoreProps["name"], len(u.Blocks))
		for _, b := range u.Blocks {
			fmt.Printf("    block %s  %q  [%d, %d]  points=%d\n",
				b.ID, b.Properties.CoreProps["name"], b.Begin.Timestamp, b.End.Timestamp, len(b.Points()))
		}
	}
	fmt.Printf("edges=%d\n", len(tr.Edges))
}
