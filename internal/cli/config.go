// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openshift-splat-team/instructlab/internal/config"
	"github.com/openshift-splat-team/instructlab/internal/logger"
)

// Prompt labels used by `config init`.
const (
	PromptTaxonomyPath = "Path to taxonomy repo"
	PromptModelPath    = "Path to your model"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Command group for interacting with the config of InstructLab",
	}

	cmd.AddCommand(
		a.newConfigInitCmd(),
		a.newConfigShowCmd(),
	)

	return cmd
}

type initOptions struct {
	nonInteractive bool
	modelPath      string
	taxonomyPath   string
	taxonomyBase   string
	hostPort       config.HostPort
	logLevel       string
}

func (o *initOptions) overrides() config.Overrides {
	return config.Overrides{
		ModelPath:    o.modelPath,
		TaxonomyPath: o.taxonomyPath,
		TaxonomyBase: o.taxonomyBase,
		HostPort:     o.hostPort.String(),
		LogLevel:     o.logLevel,
	}
}

func (a *app) newConfigInitCmd() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initializes environment for InstructLab",
		Long: `Writes a new config file to the default location. The starting point
is the file named by $ILAB_GLOBAL_CONFIG, or the built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigInit(cmd, &opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.nonInteractive, "non-interactive", false, "Initialize the environment assuming defaults.")
	flags.StringVar(&opts.modelPath, "model-path", "", "Path to the model used during serving and chatting.")
	flags.StringVar(&opts.taxonomyPath, "taxonomy-path", "", "Path to the taxonomy repository.")
	flags.StringVar(&opts.taxonomyBase, "taxonomy-base", "", "Base git-ref to use when listing/generating new taxonomy.")
	flags.Var(&opts.hostPort, "host-port", "Address the model server listens on.")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level stored in the new config.")

	return cmd
}

func (a *app) runConfigInit(cmd *cobra.Command, opts *initOptions) error {
	log := logger.FromContext(cmd.Context())

	paths := config.ResolvePaths(a.environ)
	if !paths.Resolved() {
		return config.ErrNoConfigDir
	}

	source := config.DefaultConfigSentinel
	if p := a.environ[config.EnvGlobalConfig]; p != "" {
		source = p
	}

	load := func(o config.Overrides) (*config.Config, error) {
		return config.Load(config.LoadOptions{
			ConfigPath: source,
			Environ:    a.environ,
			Overrides:  o,
		})
	}

	overrides := opts.overrides()
	cfg, err := load(overrides)
	if err != nil {
		return err
	}

	if !opts.nonInteractive {
		answered, err := a.promptMissing(cmd, cfg, overrides)
		if err != nil {
			return err
		}
		if answered != overrides {
			if cfg, err = load(answered); err != nil {
				return err
			}
		}
	}

	log.SetLevel(logger.ParseLevel(cfg.General.LogLevel))
	for _, w := range cfg.Lint() {
		log.Warn().Msg(w)
	}

	dest := paths.ConfigFile
	log.Debug().Str("source", source).Str("destination", dest).Msg("writing config")
	fmt.Fprintf(cmd.OutOrStdout(), "Generating config file: %s\n", dest)

	return config.Write(cfg, dest)
}

// promptMissing asks for the taxonomy path and model path unless they were
// given as flags. The current values of cfg are offered as defaults.
func (a *app) promptMissing(cmd *cobra.Command, cfg *config.Config, o config.Overrides) (config.Overrides, error) {
	prompter := a.prompter
	if prompter == nil {
		prompter = NewTeaPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	if o.TaxonomyPath == "" {
		v, err := prompter.Prompt(PromptTaxonomyPath, cfg.Generate.TaxonomyPath)
		if err != nil {
			return o, err
		}
		if v != cfg.Generate.TaxonomyPath {
			o.TaxonomyPath = v
		}
	}

	if o.ModelPath == "" {
		v, err := prompter.Prompt(PromptModelPath, cfg.Serve.ModelPath)
		if err != nil {
			return o, err
		}
		if v != cfg.Serve.ModelPath {
			o.ModelPath = v
		}
	}

	return o, nil
}

func (a *app) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Displays the current config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigPath: a.configPath,
				Environ:    a.environ,
			})
			if err != nil {
				return err
			}

			log := logger.FromContext(cmd.Context())
			log.SetLevel(logger.ParseLevel(cfg.General.LogLevel))
			for _, w := range cfg.Lint() {
				log.Warn().Msg(w)
			}

			data, err := cfg.ToYAML()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
