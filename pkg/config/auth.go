package config

import (
	"github.com/glorpus-work/mdshare/pkg/auth"
	"github.com/glorpus-work/mdshare/pkg/errors"
)

// AuthConfig holds the credentials sent with download requests. At most one
// scheme may be set.
type AuthConfig struct {
	BasicAuth  *BasicAuth  `yaml:"basic,omitempty"`
	HeaderAuth *HeaderAuth `yaml:"header,omitempty"`
	BearerAuth *BearerAuth `yaml:"bearer,omitempty"`
}

// BasicAuth holds configuration for HTTP Basic Authentication.
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// HeaderAuth holds configuration for custom header-based authentication.
type HeaderAuth struct {
	Headers map[string]string `yaml:"headers"`
}

// BearerAuth holds configuration for Bearer token authentication.
type BearerAuth struct {
	Token string `yaml:"token"`
}

// Authenticator returns the configured authenticator, or nil when no
// credentials are configured.
func (a *AuthConfig) Authenticator() auth.Authenticator {
	if a == nil {
		return nil
	}
	switch {
	case a.BasicAuth != nil:
		return &auth.BasicAuth{Username: a.BasicAuth.Username, Password: a.BasicAuth.Password}
	case a.HeaderAuth != nil:
		return &auth.HeaderAuth{Headers: a.HeaderAuth.Headers}
	case a.BearerAuth != nil:
		return &auth.BearerAuth{Token: a.BearerAuth.Token}
	default:
		return nil
	}
}

func (a *AuthConfig) validate() error {
	if a == nil {
		return nil
	}
	set := 0
	for _, ok := range []bool{a.BasicAuth != nil, a.HeaderAuth != nil, a.BearerAuth != nil} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return errors.Wrap(errors.ErrConfigValidation, "auth: only one of basic, header and bearer may be set")
	}
	if a.HeaderAuth != nil && len(a.HeaderAuth.Headers) == 0 {
		return errors.Wrap(errors.ErrConfigValidation, "auth: header requires at least one header")
	}
	return nil
}
