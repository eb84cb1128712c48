package auth_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/glorpus-work/mdshare/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.com/frame_00.npz", http.NoBody)
	require.NoError(t, err)
	return req
}

func TestBasicAuth(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		expected string
	}{
		{
			name:     "valid credentials",
			username: "user",
			password: "pass",
			expected: "Basic dXNlcjpwYXNz", // base64("user:pass")
		},
		{
			name:     "empty credentials",
			expected: "Basic Og==", // base64(":")
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t)
			a := &auth.BasicAuth{Username: tt.username, Password: tt.password}

			require.NoError(t, a.Apply(req))
			assert.Equal(t, tt.expected, req.Header.Get("Authorization"))
			assert.Equal(t, auth.BasicAuthType, a.Type())
		})
	}
}

func TestHeaderAuth(t *testing.T) {
	req := newRequest(t)
	a := &auth.HeaderAuth{Headers: map[string]string{
		"X-API-Key":   "test-key",
		"X-Client-ID": "client-123",
	}}

	require.NoError(t, a.Apply(req))
	// http.Header canonicalizes names
	assert.Equal(t, "test-key", req.Header.Get("X-Api-Key"))
	assert.Equal(t, "client-123", req.Header.Get("X-Client-Id"))
	assert.Equal(t, auth.HeaderAuthType, a.Type())
}

func TestBearerAuth(t *testing.T) {
	req := newRequest(t)
	a := &auth.BearerAuth{Token: "test-token-123"}

	require.NoError(t, a.Apply(req))
	assert.Equal(t, "Bearer test-token-123", req.Header.Get("Authorization"))
	assert.Equal(t, auth.BearerAuthType, a.Type())
}

func TestString_HidesSecrets(t *testing.T) {
	tests := []struct {
		a      auth.Authenticator
		want   string
		secret string
	}{
		{&auth.BasicAuth{Username: "alice", Password: "s3cret"}, "basic(alice)", "s3cret"},
		{&auth.BearerAuth{Token: "tok-123"}, "bearer", "tok-123"},
		{&auth.HeaderAuth{Headers: map[string]string{"x-b": "v2", "X-A": "v1"}}, "header(X-A,X-B)", "v1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := fmt.Sprint(tt.a)
			assert.Equal(t, tt.want, s)
			assert.NotContains(t, s, tt.secret)
		})
	}
}
