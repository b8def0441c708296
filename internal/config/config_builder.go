// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"dario.cat/mergo"
)

// Stage is a step of the configuration load.
type Stage int

const (
	StageStart Stage = iota
	StageDefaultsApplied
	StageFileMerged
	StageFileSkipped
	StageEnvMerged
	StageCliMerged
	StageValidated
	StageFailed
)

var stageNames = map[Stage]string{
	StageStart:           "start",
	StageDefaultsApplied: "defaults",
	StageFileMerged:      "file",
	StageFileSkipped:     "file-skipped",
	StageEnvMerged:       "env",
	StageCliMerged:       "cli",
	StageValidated:       "validation",
	StageFailed:          "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// LoadOptions are the inputs of [Load].
type LoadOptions struct {
	// ConfigPath is the config file to read. Empty resolves to
	// $ILAB_GLOBAL_CONFIG, then to the default location.
	// [DefaultConfigSentinel] skips the file entirely.
	ConfigPath string

	// Environ is the process environment. It is the only source consulted
	// for path resolution and env overrides.
	Environ map[string]string

	// Overrides are explicit command-line values.
	Overrides Overrides
}

// Load builds a Config by layering, lowest to highest precedence: built-in
// defaults, the config file, environment variables and CLI overrides. The
// result is validated before it is returned.
//
// Errors are *LoadError values naming the stage that failed and wrapping a
// *ConfigFileError or *ValidationError.
func Load(opts LoadOptions) (*Config, error) {
	return newConfigBuilder(opts.Environ).
		withDefaults().
		withFile(opts.ConfigPath).
		withEnv().
		withOverrides(opts.Overrides).
		build()
}

// ResolveConfigPath picks the config file to read. The returned bool is
// true when the path was named explicitly, either by argument or through
// [EnvGlobalConfig], and so must exist. The default path is empty when
// environ holds no absolute base directory.
func ResolveConfigPath(path string, environ map[string]string) (string, bool) {
	if path != "" {
		return path, true
	}
	if p := environ[EnvGlobalConfig]; p != "" {
		return p, true
	}
	return ResolvePaths(environ).ConfigFile, false
}

type configBuilder struct {
	environ map[string]string
	paths   Paths
	config  *Config
	stage   Stage
	err     error
}

func newConfigBuilder(environ map[string]string) *configBuilder {
	if environ == nil {
		environ = map[string]string{}
	}

	return &configBuilder{
		environ: environ,
		paths:   ResolvePaths(environ),
		stage:   StageStart,
	}
}

// fail records err against the stage that was being attempted.
func (b *configBuilder) fail(attempted Stage, err error) *configBuilder {
	b.err = &LoadError{Stage: attempted, Err: err}
	b.stage = StageFailed
	return b
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	if err := b.config.Validate(); err != nil {
		b.fail(StageValidated, err)
		return nil, b.err
	}
	b.stage = StageValidated

	return b.config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	if b.err != nil {
		return b
	}

	b.config = DefaultFor(b.paths)
	b.stage = StageDefaultsApplied
	return b
}

func (b *configBuilder) withFile(path string) *configBuilder {
	if b.err != nil {
		return b
	}

	if path == DefaultConfigSentinel {
		b.stage = StageFileSkipped
		return b
	}

	path, explicit := ResolveConfigPath(path, b.environ)
	if !explicit {
		if path == "" {
			b.stage = StageFileSkipped
			return b
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			b.stage = StageFileSkipped
			return b
		}
	}

	// Decode onto a copy so a failure never leaves a half-merged config.
	cfg := b.config.Clone()
	if err := parseYAMLFile(cfg, path); err != nil {
		return b.fail(StageFileMerged, err)
	}

	b.config = cfg
	b.stage = StageFileMerged
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	if b.err != nil {
		return b
	}

	cfg := b.config.Clone()
	if err := parseEnv(cfg, b.environ); err != nil {
		return b.fail(StageEnvMerged, err)
	}
	cfg.normalize()

	b.config = cfg
	b.stage = StageEnvMerged
	return b
}

func (b *configBuilder) withOverrides(o Overrides) *configBuilder {
	if b.err != nil {
		return b
	}

	if err := mergo.Merge(b.config, o.toConfig(), mergo.WithOverride); err != nil {
		return b.fail(StageCliMerged, fmt.Errorf("error merging configs: %w", err))
	}

	b.stage = StageCliMerged
	return b
}
