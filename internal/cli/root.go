// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openshift-splat-team/instructlab/internal/logger"
)

// BuildInfo describes the running binary. Empty fields print as "N/A".
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// Options are the collaborators of the command tree.
type Options struct {
	// Environ is the process environment. Commands never read os.Getenv.
	Environ map[string]string

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *logger.Logger

	// Prompter answers interactive questions. Defaults to a bubbletea
	// prompter on the command's stdin and stderr.
	Prompter Prompter

	Build BuildInfo
}

type app struct {
	environ    map[string]string
	log        *logger.Logger
	prompter   Prompter
	build      BuildInfo
	configPath string
}

// NewRootCmd creates the root ilab command.
func NewRootCmd(opts Options) *cobra.Command {
	a := &app{
		environ:  opts.Environ,
		log:      opts.Logger,
		prompter: opts.Prompter,
		build:    opts.Build,
	}
	if a.environ == nil {
		a.environ = map[string]string{}
	}
	if a.log == nil {
		a.log = logger.Nop()
	}

	root := &cobra.Command{
		Use:   "ilab",
		Short: "CLI for interacting with InstructLab",
		Long: `ilab manages the configuration used to chat with, serve and
generate data from local models.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(a.log.WithContext(cmd.Context()))
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		`Path to a configuration file, or "DEFAULT" for built-in defaults.`)

	root.AddCommand(
		a.newConfigCmd(),
		a.newVersionCmd(),
	)

	return root
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", orNA(a.build.Version))
			fmt.Fprintf(out, "Build date: %s\n", orNA(a.build.Date))
			fmt.Fprintf(out, "Build commit: %s\n", orNA(a.build.Commit))
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
