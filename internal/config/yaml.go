// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// errMultipleDocuments is returned for a config file holding more than one
// YAML document.
var errMultipleDocuments = errors.New("config must be a single YAML document")

// parseYAMLFile decodes the YAML file at path onto cfg. Keys present in the
// file replace the current values; nested sections are merged key by key and
// keys that do not belong to the schema are rejected.
func parseYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigFileError{Path: path, Err: err}
	}

	if err := decodeYAML(cfg, data); err != nil {
		return &ConfigFileError{Path: path, Err: err}
	}

	return nil
}

// decodeYAML decodes the single YAML document in data onto cfg. An empty
// document leaves cfg untouched. Mistyped values and unknown keys are
// returned as *ValidationError values naming the dotted key.
func decodeYAML(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return typeErrors(data, typeErr)
		}
		return fmt.Errorf("error decoding yaml configs: %w", err)
	}

	var next yaml.Node
	switch err := dec.Decode(&next); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return fmt.Errorf("error decoding yaml configs: %w", err)
	default:
		return fmt.Errorf("error decoding yaml configs: %w", errMultipleDocuments)
	}

	cfg.normalize()

	return nil
}

var yamlErrorLine = regexp.MustCompile(`^line (\d+): (.*)$`)

// typeErrors maps each message of a yaml.TypeError to the key at the line
// it reports.
func typeErrors(data []byte, typeErr *yaml.TypeError) error {
	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc)

	errs := make([]error, 0, len(typeErr.Errors))
	for _, msg := range typeErr.Errors {
		field, reason := "config", msg

		if m := yamlErrorLine.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			if p := keyAtLine(&doc, line, ""); p != "" {
				field = p
			}
			reason = m[2]
			if strings.Contains(reason, " not found in type ") {
				reason = "unknown key"
			}
		}

		errs = append(errs, &ValidationError{Field: field, Reason: reason})
	}

	return errors.Join(errs...)
}

// keyAtLine returns the dotted path of the innermost key whose entry sits
// on line.
func keyAtLine(n *yaml.Node, line int, prefix string) string {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if p := keyAtLine(c, line, prefix); p != "" {
				return p
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			path := prefix + k.Value

			if v.Kind == yaml.MappingNode {
				if p := keyAtLine(v, line, path+"."); p != "" {
					return p
				}
			}
			if k.Line == line || v.Line == line {
				return path
			}
			if v.Kind == yaml.SequenceNode {
				for _, item := range v.Content {
					if item.Line == line {
						return path
					}
				}
			}
		}
	}
	return ""
}

// FromMap constructs a Config from a plain mapping such as one produced by
// [Config.ToMap] or read from a YAML document. Keys missing from m keep the
// defaults of the current user; see [FromMapFor].
func FromMap(m map[string]any) (*Config, error) {
	return FromMapFor(ResolvePaths(Environ()), m)
}

// FromMapFor is [FromMap] with defaults rooted at p. Unknown keys and
// mistyped values fail with a *ValidationError, as does any field that does
// not pass [Config.Validate].
func FromMapFor(p Paths, m map[string]any) (*Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, &ValidationError{Field: "config", Reason: err.Error()}
	}

	cfg := DefaultFor(p)
	if err := decodeYAML(cfg, data); err != nil {
		if errors.Is(err, ErrInvalidConfig) {
			return nil, err
		}
		return nil, &ValidationError{Field: "config", Reason: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ToMap returns cfg as a plain mapping keyed by section name, suitable for
// persistence.
func (cfg *Config) ToMap() (map[string]any, error) {
	data, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error converting config to map: %w", err)
	}

	return m, nil
}

// ToYAML serializes cfg as a YAML document.
func (cfg *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("error encoding yaml configs: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error encoding yaml configs: %w", err)
	}

	return buf.Bytes(), nil
}

// normalize replaces nil slices with empty ones so that a config read back
// from its own serialization compares equal to the original.
func (cfg *Config) normalize() {
	if cfg.Serve.VLLM.VLLMArgs == nil {
		cfg.Serve.VLLM.VLLMArgs = []string{}
	}
	if cfg.Generate.Teacher.VLLM.VLLMArgs == nil {
		cfg.Generate.Teacher.VLLM.VLLMArgs = []string{}
	}
}
