package main

import (
	"fmt"
	"os"

	"github.com/openshift-splat-team/instructlab/internal/cli"
	"github.com/openshift-splat-team/instructlab/internal/config"
	"github.com/openshift-splat-team/instructlab/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("ilab", os.Stderr)

	root := cli.NewRootCmd(cli.Options{
		Environ: config.Environ(),
		Logger:  log,
		Build: cli.BuildInfo{
			Version: buildVersion,
			Date:    buildDate,
			Commit:  buildCommit,
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
