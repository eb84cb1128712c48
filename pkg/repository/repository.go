// Package repository loads a catalogue document into an immutable Repository
// and answers lookup, search and stack queries over the merged namespace of
// plain files and archive containers.
package repository

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/glorpus-work/mdshare/pkg/auth"
	"github.com/glorpus-work/mdshare/pkg/catalogue"
	"github.com/glorpus-work/mdshare/pkg/errors"
)

// Namespace tags which category of the catalogue a name was found in.
type Namespace string

const (
	// NamespaceIndex holds plain, standalone files.
	NamespaceIndex Namespace = "index"
	// NamespaceContainers holds archives whose top-level members are fetchable.
	NamespaceContainers Namespace = "containers"
)

// StackEntry is one catalogue match of a fetch pattern.
type StackEntry struct {
	Filename    string
	Size        int64
	NeedsUnpack bool
}

// Repository is a loaded catalogue. It is immutable after Load except for
// the HTTP client it creates on first use.
type Repository struct {
	url        string
	index      catalogue.Category
	containers catalogue.Category
	source     string

	timeout   time.Duration
	userAgent string
	auth      auth.Authenticator

	mu     sync.Mutex
	client *http.Client
	owned  bool
}

// Load reads the catalogue at cataloguePath. When checksumPath is not empty
// the MD5 of the catalogue bytes must equal the checksum file's contents.
func Load(cataloguePath, checksumPath string, opts ...Option) (*Repository, error) {
	data, err := readFile(cataloguePath, "catalogue")
	if err != nil {
		return nil, err
	}
	var checksum []byte
	if checksumPath != "" {
		checksum, err = readFile(checksumPath, "checksum")
		if err != nil {
			return nil, err
		}
	}
	repo, err := LoadFromBytes(data, checksum, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", cataloguePath)
	}
	repo.source = cataloguePath
	return repo, nil
}

// LoadFromBytes builds a Repository from an in-memory catalogue document. A
// nil checksum skips the integrity check.
func LoadFromBytes(data, checksum []byte, opts ...Option) (*Repository, error) {
	if checksum != nil && catalogue.HashBytes(data) != string(checksum) {
		return nil, errors.Wrap(errors.ErrIntegrity, "checksums do not match, check your catalogue files")
	}
	doc, err := catalogue.Parse(data)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...), nil
}

// New wraps an already validated document.
func New(doc *catalogue.Document, opts ...Option) *Repository {
	r := &Repository{
		url:        doc.URL,
		index:      doc.Index,
		containers: doc.Containers,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func readFile(path, kind string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s file %s: %w: %w", kind, path, errors.ErrNotFound, err)
		}
		return nil, errors.Wrapf(err, "cannot read %s file %s", kind, path)
	}
	return data, nil
}

// BaseURL returns the address every entry is resolved against.
func (r *Repository) BaseURL() string { return r.url }

// Source returns the catalogue path the repository was loaded from, if any.
func (r *Repository) Source() string { return r.source }

// Index returns the plain file category.
func (r *Repository) Index() catalogue.Category { return r.index }

// Containers returns the container category.
func (r *Repository) Containers() catalogue.Category { return r.containers }

// Lookup finds name, checking the index before the containers.
func (r *Repository) Lookup(name string) (Namespace, catalogue.Entry, error) {
	if entry, ok := r.index[name]; ok {
		return NamespaceIndex, entry, nil
	}
	if entry, ok := r.containers[name]; ok {
		return NamespaceContainers, entry, nil
	}
	return "", catalogue.Entry{}, errors.NewLoadError(errors.ErrNotFound, name, "file not in repository catalogue")
}

// Size returns the recorded byte count of name.
func (r *Repository) Size(name string) (int64, error) {
	_, entry, err := r.Lookup(name)
	return entry.Size, err
}

// Hash returns the recorded digest of name.
func (r *Repository) Hash(name string) (string, error) {
	_, entry, err := r.Lookup(name)
	return entry.Hash, err
}

// Search returns the sorted union of names in both categories matching pattern.
func (r *Repository) Search(pattern string) ([]string, error) {
	index, err := r.index.Search(pattern)
	if err != nil {
		return nil, err
	}
	containers, err := r.containers.Search(pattern)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(index)+len(containers))
	names := make([]string, 0, len(index)+len(containers))
	for _, name := range append(index, containers...) {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Stack resolves pattern into the ordered entries a fetch has to process.
func (r *Repository) Stack(pattern string) ([]StackEntry, error) {
	names, err := r.Search(pattern)
	if err != nil {
		return nil, err
	}
	stack := make([]StackEntry, 0, len(names))
	for _, name := range names {
		ns, entry, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		stack = append(stack, StackEntry{
			Filename:    name,
			Size:        entry.Size,
			NeedsUnpack: ns == NamespaceContainers,
		})
	}
	return stack, nil
}

// String lists the base URL, every file and every container.
func (r *Repository) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Repository: %s\n", r.url)
	b.WriteString("Files:\n")
	b.WriteString(r.index.String())
	b.WriteString("\nContainers:\n")
	b.WriteString(r.containers.String())
	return b.String()
}
