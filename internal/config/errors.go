// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	// ErrInvalidConfig indicates a field whose value is missing, mistyped or
	// outside its allowed set.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrConfigFile indicates a config file that could not be read or is not
	// valid YAML for the schema.
	ErrConfigFile = errors.New("config file error")
	// ErrConfigWrite indicates a config file that could not be persisted.
	ErrConfigWrite = errors.New("config write error")
	// ErrNoConfigDir indicates an environment with no absolute base for the
	// config directory.
	ErrNoConfigDir = errors.New("cannot determine the config directory: set HOME or XDG_CONFIG_HOME to an absolute path")
)

// ValidationError names a single offending field and the reason it was
// rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ConfigFileError is returned when a config file is unreadable or malformed.
type ConfigFileError struct {
	Path string
	Err  error
}

func (e *ConfigFileError) Error() string {
	return fmt.Sprintf("config file %q: %v", e.Path, e.Err)
}

func (e *ConfigFileError) Unwrap() error { return e.Err }

func (e *ConfigFileError) Is(target error) bool {
	return target == ErrConfigFile
}

// WriteError is returned when a config file cannot be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing config file %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool {
	return target == ErrConfigWrite
}

// LoadError records the loader stage that was being attempted when loading
// was aborted.
type LoadError struct {
	Stage Stage
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config failed at stage %s: %v", e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
