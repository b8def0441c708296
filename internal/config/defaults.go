// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvGlobalConfig names the config file to load instead of the default
	// location.
	EnvGlobalConfig = "ILAB_GLOBAL_CONFIG"

	// EnvPrefix prefixes every field-level environment override.
	EnvPrefix = "ILAB_"

	// DefaultConfigSentinel passed as the config path skips the file layer
	// and yields built-in defaults.
	DefaultConfigSentinel = "DEFAULT"

	appDirName     = "instructlab"
	configFileName = "config.yaml"
)

// Default model files shipped with the tool.
const (
	DefaultChatModelFile     = "merlinite-7b-lab-Q4_K_M.gguf"
	DefaultGenerateModelFile = "mistral-7b-instruct-v0.2.Q4_K_M.gguf"
)

// Log level names accepted by general.log_level.
const (
	LogLevelCritical = "CRITICAL"
	LogLevelFatal    = "FATAL"
	LogLevelError    = "ERROR"
	LogLevelWarning  = "WARNING"
	LogLevelWarn     = "WARN"
	LogLevelInfo     = "INFO"
	LogLevelDebug    = "DEBUG"
	LogLevelNotSet   = "NOTSET"
)

// Paths holds the per-user directories the tool keeps its files in.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	ConfigFile string
}

// ModelsDir is the directory downloaded models are stored in.
func (p Paths) ModelsDir() string {
	return filepath.Join(p.CacheDir, "models")
}

// ResolvePaths derives the tool directories from environ following the XDG
// base directory layout, falling back to $HOME. It reads nothing but environ.
//
// Relative XDG_* values are ignored. A directory with no absolute base is
// left empty, see [Paths.Resolved].
func ResolvePaths(environ map[string]string) Paths {
	home := environ["HOME"]
	if !filepath.IsAbs(home) {
		home = ""
	}

	base := func(xdgVar string, fallback ...string) string {
		if v := environ[xdgVar]; filepath.IsAbs(v) {
			return filepath.Join(v, appDirName)
		}
		if home == "" {
			return ""
		}
		return filepath.Join(append(append([]string{home}, fallback...), appDirName)...)
	}

	p := Paths{
		ConfigDir: base("XDG_CONFIG_HOME", ".config"),
		DataDir:   base("XDG_DATA_HOME", ".local", "share"),
		CacheDir:  base("XDG_CACHE_HOME", ".cache"),
	}
	if p.ConfigDir != "" {
		p.ConfigFile = filepath.Join(p.ConfigDir, configFileName)
	}

	return p
}

// Resolved reports whether the config location is known. It is false when
// neither XDG_CONFIG_HOME nor HOME holds an absolute path.
func (p Paths) Resolved() bool {
	return p.ConfigFile != ""
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	return EnvironFromList(os.Environ())
}

// EnvironFromList converts "KEY=VALUE" pairs into a map. Later duplicates win.
func EnvironFromList(list []string) map[string]string {
	m := make(map[string]string, len(list))
	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

// Default returns the built-in configuration for the current user.
func Default() *Config {
	return DefaultFor(ResolvePaths(Environ()))
}

// DefaultFor returns a fully populated Config whose path-valued fields are
// rooted at p. It performs no I/O and never fails.
func DefaultFor(p Paths) *Config {
	chatModel := filepath.Join(p.ModelsDir(), DefaultChatModelFile)
	generateModel := filepath.Join(p.ModelsDir(), DefaultGenerateModelFile)

	return &Config{
		General: General{
			LogLevel:   LogLevelInfo,
			DebugLevel: 0,
		},
		Chat: Chat{
			Model:           chatModel,
			VIMode:          false,
			VisibleOverflow: true,
			Context:         ChatContextDefault,
			LogsDir:         filepath.Join(p.DataDir, "chatlogs"),
			GreedyMode:      false,
			MaxTokens:       0,
		},
		Generate: Generate{
			Pipeline:       PipelineSimple,
			Model:          generateModel,
			TaxonomyPath:   filepath.Join(p.DataDir, "taxonomy"),
			TaxonomyBase:   "origin/main",
			NumCPUs:        10,
			ChunkWordCount: 1000,
			SDGScaleFactor: 30,
			OutputDir:      filepath.Join(p.DataDir, "datasets"),
			Teacher:        defaultServe(generateModel),
		},
		Serve: defaultServe(chatModel),
		Evaluate: Evaluate{
			OutputDir: filepath.Join(p.DataDir, "internal", "eval_data"),
			MMLU: MMLU{
				FewShots:  5,
				BatchSize: "auto",
			},
		},
	}
}

func defaultServe(modelPath string) Serve {
	return Serve{
		ModelPath: modelPath,
		HostPort:  "127.0.0.1:8000",
		LlamaCpp: LlamaCpp{
			GPULayers:  -1,
			MaxCtxSize: 4096,
		},
		VLLM: VLLM{
			MaxStartupAttempts: 120,
			VLLMArgs:           []string{},
		},
	}
}
