// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Allowed values of enumerated fields. The validate tags on [Config] list
// the same values.
const (
	ChatContextDefault   = "default"
	ChatContextCLIHelper = "cli_helper"

	PipelineSimple = "simple"
	PipelineFull   = "full"

	BackendAuto     = ""
	BackendLlamaCpp = "llama-cpp"
	BackendVLLM     = "vllm"
)

const batchSizeAuto = "auto"

var validate = newValidator()

// newValidator returns a validator that names fields by their yaml keys and
// knows the host_port and batch_size rules.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("host_port", func(fl validator.FieldLevel) bool {
		_, err := parseHostPort(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("batch_size", func(fl validator.FieldLevel) bool {
		return validBatchSize(fl.Field().String())
	})

	return v
}

func validBatchSize(s string) bool {
	if s == batchSizeAuto {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// Validate checks every field of cfg and returns all violations joined
// together. Each violation is a *ValidationError naming the dotted yaml key;
// the first one can be retrieved with errors.As.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Field: "config", Reason: err.Error()}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{
			Field:  fieldPath(fe),
			Reason: fieldReason(fe),
		})
	}

	return errors.Join(errs...)
}

// fieldPath turns "Config.serve.llama_cpp.gpu_layers" into
// "serve.llama_cpp.gpu_layers".
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be set"
	case "oneof":
		return fmt.Sprintf("%q is not one of %s", fe.Value(), quoteAll(strings.Fields(fe.Param())))
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be %s or greater, got %v", fe.Param(), fe.Value())
	case "host_port":
		if _, err := parseHostPort(fmt.Sprint(fe.Value())); err != nil {
			return err.Error()
		}
		return "invalid address"
	case "batch_size":
		return fmt.Sprintf("%q is neither %q nor a positive integer", fe.Value(), batchSizeAuto)
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// Lint reports soft problems that do not prevent the configuration from
// being used. The generation model is expected to differ from the model
// being served for chat.
func (cfg *Config) Lint() []string {
	var warnings []string

	served := cfg.Serve.ModelPath
	if served == "" {
		return nil
	}
	if cfg.Generate.Model == served {
		warnings = append(warnings, fmt.Sprintf("generate.model and serve.model_path are both %q", served))
	}
	if cfg.Generate.Teacher.ModelPath == served {
		warnings = append(warnings, fmt.Sprintf("generate.teacher.model_path and serve.model_path are both %q", served))
	}

	return warnings
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
