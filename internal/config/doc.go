// Package config provides configuration loading, merging, validation and
// persistence for the ilab tool.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier ones):
//  1. Built-in defaults ([DefaultFor])
//  2. YAML config file
//  3. Environment variables (ILAB_<SECTION>_<FIELD>)
//  4. Command-line overrides ([Overrides])
//
// The main entry points are [Load] for reading the merged configuration and
// [Write] for persisting it atomically.
package config
