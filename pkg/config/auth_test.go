package config

import (
	"strings"
	"testing"

	"github.com/glorpus-work/mdshare/pkg/auth"
	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthConfig_Authenticator(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *AuthConfig
		expected auth.Authenticator
	}{
		{name: "nil", cfg: nil, expected: nil},
		{name: "empty", cfg: &AuthConfig{}, expected: nil},
		{
			name:     "basic",
			cfg:      &AuthConfig{BasicAuth: &BasicAuth{Username: "user", Password: "pass"}},
			expected: &auth.BasicAuth{Username: "user", Password: "pass"},
		},
		{
			name:     "header",
			cfg:      &AuthConfig{HeaderAuth: &HeaderAuth{Headers: map[string]string{"X-API-Key": "k"}}},
			expected: &auth.HeaderAuth{Headers: map[string]string{"X-API-Key": "k"}},
		},
		{
			name:     "bearer",
			cfg:      &AuthConfig{BearerAuth: &BearerAuth{Token: "t"}},
			expected: &auth.BearerAuth{Token: "t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.Authenticator()
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoadConfig_Auth(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(`settings:
  max_attempts: 2
  log_level: info
  auth:
    bearer:
      token: abc
`))
	require.NoError(t, err)
	assert.Equal(t, &auth.BearerAuth{Token: "abc"}, cfg.Settings.Auth.Authenticator())
}

func TestLoadConfig_AuthErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "two schemes",
			yaml: `settings:
  max_attempts: 2
  log_level: info
  auth:
    bearer:
      token: abc
    basic:
      username: u
      password: p
`,
		},
		{
			name: "header without headers",
			yaml: `settings:
  max_attempts: 2
  log_level: info
  auth:
    header:
      headers: {}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, errors.ErrConfigValidation)
		})
	}
}
