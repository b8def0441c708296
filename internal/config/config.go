// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Config is the top-level configuration container for the ilab tool. It
// aggregates all sections and is populated by merging built-in defaults, an
// optional YAML file, environment variables and command-line overrides.
//
// Struct tags:
//   - yaml: key name inside the config file (gopkg.in/yaml.v3).
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: environment variable name for scalar fields. The loader
//     additionally prefixes every name with "ILAB_".
//   - validate: field rules checked by [Config.Validate]
//     (go-playground/validator).
type Config struct {
	// General holds process-wide settings such as the log level.
	General General `yaml:"general" envPrefix:"GENERAL_"`

	// Chat holds settings for the interactive chat session.
	Chat Chat `yaml:"chat" envPrefix:"CHAT_"`

	// Generate holds settings for synthetic data generation, including the
	// teacher model that is served while generating.
	Generate Generate `yaml:"generate" envPrefix:"GENERATE_"`

	// Serve holds settings for the model server.
	Serve Serve `yaml:"serve" envPrefix:"SERVE_"`

	// Evaluate holds settings for model evaluation runs.
	Evaluate Evaluate `yaml:"evaluate" envPrefix:"EVALUATE_"`
}

// General holds process-wide settings.
type General struct {
	// LogLevel is a severity name such as "INFO" or "DEBUG".
	// Env: ILAB_GENERAL_LOG_LEVEL
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=CRITICAL FATAL ERROR WARNING WARN INFO DEBUG NOTSET"`

	// DebugLevel raises the verbosity of debug output when LogLevel is DEBUG.
	// Env: ILAB_GENERAL_DEBUG_LEVEL
	DebugLevel int `yaml:"debug_level" env:"DEBUG_LEVEL" validate:"gte=0"`
}

// Chat holds settings for the interactive chat session.
type Chat struct {
	// Model is the path or name of the model used for chatting.
	// Env: ILAB_CHAT_MODEL
	Model string `yaml:"model" env:"MODEL" validate:"required"`

	// VIMode enables vi key bindings in the chat input.
	VIMode bool `yaml:"vi_mode" env:"VI_MODE"`

	// VisibleOverflow renders overflowing text instead of cropping it.
	VisibleOverflow bool `yaml:"visible_overflow" env:"VISIBLE_OVERFLOW"`

	// Context selects the system prompt ("default" or "cli_helper").
	Context string `yaml:"context" env:"CONTEXT" validate:"oneof=default cli_helper"`

	// Session is an optional file with a saved conversation to resume.
	Session string `yaml:"session" env:"SESSION"`

	// LogsDir is the directory where chat transcripts are written.
	LogsDir string `yaml:"logs_dir" env:"LOGS_DIR"`

	// GreedyMode disables sampling.
	GreedyMode bool `yaml:"greedy_mode" env:"GREEDY_MODE"`

	// MaxTokens caps the response length; zero means unlimited.
	MaxTokens int `yaml:"max_tokens" env:"MAX_TOKENS" validate:"gte=0"`
}

// Generate holds settings for synthetic data generation.
type Generate struct {
	// Pipeline is the generation pipeline ("simple" or "full").
	Pipeline string `yaml:"pipeline" env:"PIPELINE" validate:"oneof=simple full"`

	// Model is the identifier of the model used for generation.
	// Env: ILAB_GENERATE_MODEL
	Model string `yaml:"model" env:"MODEL" validate:"required"`

	// TaxonomyPath is the local checkout of the taxonomy repository.
	TaxonomyPath string `yaml:"taxonomy_path" env:"TAXONOMY_PATH"`

	// TaxonomyBase is the git ref new taxonomy entries are diffed against.
	TaxonomyBase string `yaml:"taxonomy_base" env:"TAXONOMY_BASE"`

	NumCPUs        int    `yaml:"num_cpus" env:"NUM_CPUS" validate:"gt=0"`
	ChunkWordCount int    `yaml:"chunk_word_count" env:"CHUNK_WORD_COUNT" validate:"gt=0"`
	SDGScaleFactor int    `yaml:"sdg_scale_factor" env:"SDG_SCALE_FACTOR" validate:"gt=0"`
	OutputDir      string `yaml:"output_dir" env:"OUTPUT_DIR"`

	// Teacher is the server configuration for the teacher model that is
	// started while generating data.
	Teacher Serve `yaml:"teacher" envPrefix:"TEACHER_"`
}

// Serve holds settings for the model server.
type Serve struct {
	// ModelPath is the path of the model to serve. It need not exist when
	// the configuration is validated.
	// Env: ILAB_SERVE_MODEL_PATH
	ModelPath string `yaml:"model_path" env:"MODEL_PATH" validate:"required"`

	// HostPort is the listen address in "host:port" form.
	HostPort string `yaml:"host_port" env:"HOST_PORT" validate:"host_port"`

	// Backend forces a serving backend; empty selects one automatically.
	Backend string `yaml:"backend" env:"BACKEND" validate:"omitempty,oneof=llama-cpp vllm"`

	// ChatTemplate is an optional path to a chat template.
	ChatTemplate string `yaml:"chat_template" env:"CHAT_TEMPLATE"`

	LlamaCpp LlamaCpp `yaml:"llama_cpp" envPrefix:"LLAMA_CPP_"`
	VLLM     VLLM     `yaml:"vllm" envPrefix:"VLLM_"`
}

// LlamaCpp holds llama.cpp backend settings.
type LlamaCpp struct {
	// GPULayers is the number of layers offloaded to the GPU; -1 means all.
	GPULayers  int    `yaml:"gpu_layers" env:"GPU_LAYERS" validate:"gte=-1"`
	MaxCtxSize int    `yaml:"max_ctx_size" env:"MAX_CTX_SIZE" validate:"gt=0"`
	LLMFamily  string `yaml:"llm_family" env:"LLM_FAMILY"`
}

// VLLM holds vLLM backend settings.
type VLLM struct {
	LLMFamily          string   `yaml:"llm_family" env:"LLM_FAMILY"`
	MaxStartupAttempts int      `yaml:"max_startup_attempts" env:"MAX_STARTUP_ATTEMPTS" validate:"gt=0"`
	GPUs               int      `yaml:"gpus" env:"GPUS" validate:"gte=0"`
	VLLMArgs           []string `yaml:"vllm_args" env:"ARGS"`
}

// Evaluate holds settings for model evaluation runs.
type Evaluate struct {
	Model      string `yaml:"model" env:"MODEL"`
	BaseModel  string `yaml:"base_model" env:"BASE_MODEL"`
	Branch     string `yaml:"branch" env:"BRANCH"`
	BaseBranch string `yaml:"base_branch" env:"BASE_BRANCH"`
	OutputDir  string `yaml:"output_dir" env:"OUTPUT_DIR"`
	GPUs       int    `yaml:"gpus" env:"GPUS" validate:"gte=0"`
	MMLU       MMLU   `yaml:"mmlu" envPrefix:"MMLU_"`
}

// MMLU holds settings for the MMLU benchmark.
type MMLU struct {
	FewShots int `yaml:"few_shots" env:"FEW_SHOTS" validate:"gte=0"`

	// BatchSize is "auto" or a positive integer.
	BatchSize string `yaml:"batch_size" env:"BATCH_SIZE" validate:"batch_size"`
}

// Clone returns a deep copy of cfg.
func (cfg *Config) Clone() *Config {
	c := *cfg
	c.Serve.VLLM.VLLMArgs = cloneStrings(cfg.Serve.VLLM.VLLMArgs)
	c.Generate.Teacher.VLLM.VLLMArgs = cloneStrings(cfg.Generate.Teacher.VLLM.VLLMArgs)
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
