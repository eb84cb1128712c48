// Package auth applies credentials to catalogue download requests.
package auth

import (
	"net/http"
	"sort"
	"strings"
)

// Authenticator adds credentials to an outgoing request.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// Type names an authentication scheme.
type Type string

// Authentication schemes.
const (
	BasicAuthType  Type = "basic"
	HeaderAuthType Type = "header"
	BearerAuthType Type = "bearer"
)

// BasicAuth sends HTTP Basic credentials.
type BasicAuth struct {
	Username string
	Password string
}

// Apply implements Authenticator.
func (b *BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type implements Authenticator.
func (b *BasicAuth) Type() Type { return BasicAuthType }

// String hides the password.
func (b *BasicAuth) String() string { return "basic(" + b.Username + ")" }

// HeaderAuth sets fixed request headers, e.g. an API key.
type HeaderAuth struct {
	Headers map[string]string
}

// Apply implements Authenticator.
func (h *HeaderAuth) Apply(req *http.Request) error {
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// Type implements Authenticator.
func (h *HeaderAuth) Type() Type { return HeaderAuthType }

// String lists the header names only.
func (h *HeaderAuth) String() string {
	names := make([]string, 0, len(h.Headers))
	for k := range h.Headers {
		names = append(names, http.CanonicalHeaderKey(k))
	}
	sort.Strings(names)
	return "header(" + strings.Join(names, ",") + ")"
}

// BearerAuth sends a bearer token.
type BearerAuth struct {
	Token string
}

// Apply implements Authenticator.
func (b *BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type implements Authenticator.
func (b *BearerAuth) Type() Type { return BearerAuthType }

// String hides the token.
func (b *BearerAuth) String() string { return "bearer" }
