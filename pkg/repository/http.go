package repository

import (
	"net/http"
	"strings"
	"time"

	"github.com/glorpus-work/mdshare/pkg/auth"
)

// DefaultUserAgent is sent with every download request.
const DefaultUserAgent = "mdshare/1.0"

// Option configures a Repository.
type Option func(*Repository)

// WithHTTPTimeout sets the timeout of the lazily created HTTP client.
// Zero means no timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(r *Repository) { r.timeout = timeout }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(r *Repository) {
		if userAgent != "" {
			r.userAgent = userAgent
		}
	}
}

// WithHTTPClient makes the repository use client instead of creating one.
// Close leaves a client supplied this way untouched.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Repository) { r.client = client }
}

// WithAuth sends credentials with every download request.
func WithAuth(a auth.Authenticator) Option {
	return func(r *Repository) { r.auth = a }
}

// Authorize prepares a download request: it sets the User-Agent header and
// applies the configured credentials, if any.
func (r *Repository) Authorize(req *http.Request) error {
	req.Header.Set("User-Agent", r.userAgent)
	if r.auth == nil {
		return nil
	}
	return r.auth.Apply(req)
}

// Client returns the HTTP client shared by every download made through the
// repository, creating it on first use.
func (r *Repository) Client() *http.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		r.client = &http.Client{Timeout: r.timeout}
		r.owned = true
	}
	return r.client
}

// Close releases the idle connections of a client created by the repository.
// A later download creates a fresh client.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil && r.owned {
		r.client.CloseIdleConnections()
		r.client = nil
		r.owned = false
	}
	return nil
}

// URL returns the download address of name.
func (r *Repository) URL(name string) string {
	return URLJoin(r.url, name)
}

// URLJoin joins a repository URL and a file name with exactly one slash.
func URLJoin(repositoryURL, name string) string {
	return strings.TrimRight(repositoryURL, "/") + "/" + strings.TrimLeft(name, "/")
}
