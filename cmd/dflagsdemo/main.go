//
// Copyright 2026 The dflags Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package main is a demo of flags declared in several packages and parsed
// in one place.
package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/apstndb/dflags/usage"
)

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dflagsdemo",
		Short: "Demo of decoupled, typed command-line flags",
		Long: heredoc.Doc(`
			dflagsdemo declares flags in two packages and parses them together.

			The server package declares its flags as a tagged struct, the storage
			package one by one. Both have a flag named "timeout"; use
			--server.timeout or --storage.timeout to pick one.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run [flags] [args...]",
		Short: "Parse flags and print the resulting configuration",
		Example: heredoc.Doc(`
			dflagsdemo run -p 9090 --tls --storage.timeout 5s --dump
			dflagsdemo run --line='--dir "/var/lib/demo data" --noreadonly' input.txt`),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(args)
		},
	}

	var (
		format string
		output string
		prefix string
	)
	usageCmd := &cobra.Command{
		Use:   "usage",
		Short: "Print the declared flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printUsage(format, output, prefix)
		},
	}
	usageCmd.Flags().StringVar(&format, "format", string(usage.FormatText), "output format ("+usage.FormatNames()+")")
	usageCmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	usageCmd.Flags().StringVar(&prefix, "owner-prefix", "", "only print owners starting with this prefix")

	rootCmd.AddCommand(runCmd, usageCmd)
	return rootCmd
}

func newLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.DisableCaller = true
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if os.Getenv("DFLAGSDEMO_DEBUG") != "" {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run() int {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	a, err := newApp(os.Stdout, os.Stderr, afero.NewOsFs(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeError
	}

	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return GetExitCode(err)
	}
	return exitCodeSuccess
}

func main() {
	os.Exit(run())
}
