package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHostPort_String tests the String method of HostPort
func TestHostPort_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     HostPort
		expected string
	}{
		{
			name:     "empty address",
			addr:     HostPort{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     HostPort{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "IP address with port",
			addr:     HostPort{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "IPv6 address with port",
			addr:     HostPort{Host: "::1", Port: 8000},
			expected: "[::1]:8000",
		},
		{
			name:     "only port no host",
			addr:     HostPort{Host: "", Port: 8080},
			expected: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.addr.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestHostPort_Set tests the Set method of HostPort
func TestHostPort_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr HostPort
	}{
		{
			name:         "valid localhost",
			input:        "localhost:8080",
			expectedAddr: HostPort{Host: "localhost", Port: 8080},
		},
		{
			name:         "valid IPv4",
			input:        "127.0.0.1:9090",
			expectedAddr: HostPort{Host: "127.0.0.1", Port: 9090},
		},
		{
			name:         "valid IPv6",
			input:        "[::1]:8000",
			expectedAddr: HostPort{Host: "::1", Port: 8000},
		},
		{
			name:        "missing colon",
			input:       "localhost8080",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "non-numeric port",
			input:       "localhost:http",
			expectError: true,
			errorMsg:    "port must be a number",
		},
		{
			name:        "zero port",
			input:       "localhost:0",
			expectError: true,
			errorMsg:    "port number must be between 1 and 65535",
		},
		{
			name:        "port too large",
			input:       "localhost:70000",
			expectError: true,
			errorMsg:    "port number must be between 1 and 65535",
		},
		{
			name:        "hostname other than localhost",
			input:       "example.com:80",
			expectError: true,
			errorMsg:    "incorrect IP-address provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr HostPort
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
				assert.Equal(t, HostPort{}, addr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestHostPort_Type(t *testing.T) {
	assert.Equal(t, "host:port", (&HostPort{}).Type())
}

func TestOverrides_IsZero(t *testing.T) {
	assert.True(t, Overrides{}.IsZero())
	assert.False(t, Overrides{LogLevel: "DEBUG"}.IsZero())
}

// TestOverrides_ToConfig verifies that only overridden fields are set on the
// projected config.
func TestOverrides_ToConfig(t *testing.T) {
	o := Overrides{
		ModelPath:    "/m.gguf",
		TaxonomyPath: "/tax",
		TaxonomyBase: "upstream/main",
		HostPort:     "localhost:1",
		LogLevel:     "ERROR",
	}

	cfg := o.toConfig()

	assert.Equal(t, "/m.gguf", cfg.Serve.ModelPath)
	assert.Equal(t, "/m.gguf", cfg.Chat.Model)
	assert.Empty(t, cfg.Generate.Model)
	assert.Empty(t, cfg.Generate.Teacher.ModelPath)
	assert.Equal(t, "/tax", cfg.Generate.TaxonomyPath)
	assert.Equal(t, "upstream/main", cfg.Generate.TaxonomyBase)
	assert.Equal(t, "localhost:1", cfg.Serve.HostPort)
	assert.Equal(t, "ERROR", cfg.General.LogLevel)
	assert.Equal(t, &Config{}, (Overrides{}).toConfig())
}
