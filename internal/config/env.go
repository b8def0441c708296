// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv applies field-level overrides from environ to cfg using the
// caarlos0/env library. Struct fields are mapped via their `env` and
// `envPrefix` tags defined on [Config] and its nested types, with every
// variable name prefixed by [EnvPrefix]. Fields whose variable is absent
// keep their current value.
//
// A value that cannot be converted to the target type is reported as a
// *ValidationError naming the dotted yaml key of the field.
func parseEnv(cfg *Config, environ map[string]string) error {
	err := env.ParseWithOptions(cfg, env.Options{
		Environment: environ,
		Prefix:      EnvPrefix,
	})
	if err != nil {
		return envError(err, environ)
	}

	return nil
}

// envVar ties an environment variable to the config key it sets.
type envVar struct {
	key   string
	path  string
	field string
	kind  reflect.Kind
}

var envVars = collectEnvVars(reflect.TypeOf((*Config)(nil)).Elem(), EnvPrefix, "")

func collectEnvVars(t reflect.Type, keyPrefix, pathPrefix string) []envVar {
	var vars []envVar
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")

		if prefix, ok := f.Tag.Lookup("envPrefix"); ok && f.Type.Kind() == reflect.Struct {
			vars = append(vars, collectEnvVars(f.Type, keyPrefix+prefix, pathPrefix+name+".")...)
			continue
		}

		key, _, _ := strings.Cut(f.Tag.Get("env"), ",")
		if key == "" {
			continue
		}
		vars = append(vars, envVar{
			key:   keyPrefix + key,
			path:  pathPrefix + name,
			field: f.Name,
			kind:  f.Type.Kind(),
		})
	}
	return vars
}

// envError converts the caarlos0/env parse errors into *ValidationError
// values. The library reports only the Go field name, so the variable is
// found among those set in environ whose value does not convert.
func envError(err error, environ map[string]string) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return &ValidationError{Field: "environment", Reason: err.Error()}
	}

	errs := make([]error, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		var parseErr env.ParseError
		if !errors.As(e, &parseErr) {
			errs = append(errs, &ValidationError{Field: "environment", Reason: e.Error()})
			continue
		}

		v, ok := lookupEnvVar(parseErr.Name, environ)
		if !ok {
			errs = append(errs, &ValidationError{Field: "environment", Reason: e.Error()})
			continue
		}
		errs = append(errs, &ValidationError{
			Field:  v.path,
			Reason: fmt.Sprintf("%s=%q: %v", v.key, environ[v.key], parseErr.Err),
		})
	}

	return errors.Join(errs...)
}

func lookupEnvVar(field string, environ map[string]string) (envVar, bool) {
	for _, v := range envVars {
		if v.field != field {
			continue
		}
		value, set := environ[v.key]
		if set && !convertible(v.kind, value) {
			return v, true
		}
	}
	return envVar{}, false
}

func convertible(kind reflect.Kind, value string) bool {
	var err error
	switch kind {
	case reflect.Bool:
		_, err = strconv.ParseBool(value)
	case reflect.Int:
		// caarlos0/env parses int as 32 bits.
		_, err = strconv.ParseInt(value, 10, 32)
	}
	return err == nil
}
