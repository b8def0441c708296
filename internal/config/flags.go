// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net"
	"strconv"
)

// Overrides carries values given explicitly on the command line. They take
// precedence over every other source. An empty field means "not given".
type Overrides struct {
	// ModelPath sets serve.model_path and chat.model. The generation and
	// teacher models are never derived from it.
	ModelPath string

	// TaxonomyPath sets generate.taxonomy_path.
	TaxonomyPath string

	// TaxonomyBase sets generate.taxonomy_base.
	TaxonomyBase string

	// HostPort sets serve.host_port.
	HostPort string

	// LogLevel sets general.log_level.
	LogLevel string
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// toConfig projects o onto a sparse Config in which only overridden fields
// are non-zero, ready to be merged over a fully populated one.
func (o Overrides) toConfig() *Config {
	return &Config{
		General: General{
			LogLevel: o.LogLevel,
		},
		Chat: Chat{
			Model: o.ModelPath,
		},
		Generate: Generate{
			TaxonomyPath: o.TaxonomyPath,
			TaxonomyBase: o.TaxonomyBase,
		},
		Serve: Serve{
			ModelPath: o.ModelPath,
			HostPort:  o.HostPort,
		},
	}
}

// HostPort holds structured network address data for host and port.
// It implements the pflag.Value interface.
type HostPort struct {
	Host string
	Port int
}

// String returns a canonical host:port string. If neither Host nor Port are
// set, it returns an empty string.
func (a *HostPort) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the HostPort.
// It validates the port range, checks IP correctness unless host is
// "localhost", and returns an error if the format or values are invalid.
func (a *HostPort) Set(s string) error {
	parsed, err := parseHostPort(s)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// Type names the flag value type in usage output.
func (a *HostPort) Type() string {
	return "host:port"
}

func parseHostPort(s string) (HostPort, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return HostPort{}, errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return HostPort{}, errors.New("port must be a number")
	}

	if port < 1 || port > 65535 {
		return HostPort{}, errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return HostPort{}, errors.New("incorrect IP-address provided")
		}
	}

	return HostPort{Host: host, Port: port}, nil
}
