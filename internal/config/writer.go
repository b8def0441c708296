// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

const (
	configFileMode = 0o644
	configDirMode  = 0o755
)

// Write validates cfg and persists it as YAML at dest. The document is
// written to a temporary file in the same directory and renamed over dest,
// so readers see either the previous file or the complete new one.
// Missing parent directories are created.
//
// Validation failures are returned as is; I/O failures as *WriteError.
func Write(cfg *Config, dest string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.ToYAML()
	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}

	if err := writeFileAtomic(dest, data); err != nil {
		return &WriteError{Path: dest, Err: err}
	}

	return nil
}

func writeFileAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, configDirMode); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	t, err := renameio.NewPendingFile(dest,
		renameio.WithTempDir(dir),
		renameio.WithStaticPermissions(configFileMode),
	)
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	// No-op once the file has been renamed into place.
	defer t.Cleanup()

	if _, err := t.Write(data); err != nil {
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}
