// Package catalogue implements the catalogue document: a YAML file naming a
// base URL, an index of plain files and an index of archive containers, each
// entry carrying an MD5 digest and a byte size. It also builds catalogues from
// a directory of files.
package catalogue

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/glorpus-work/mdshare/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Required top-level keys of a catalogue document.
const (
	KeyURL        = "url"
	KeyIndex      = "index"
	KeyContainers = "containers"
)

// Document is the in-memory form of a catalogue document.
type Document struct {
	URL        string   `yaml:"url"`
	Index      Category `yaml:"index"`
	Containers Category `yaml:"containers"`
}

// rawDocument keeps missing keys distinguishable from empty ones.
type rawDocument struct {
	URL        *string   `yaml:"url"`
	Index      *Category `yaml:"index"`
	Containers *Category `yaml:"containers"`
}

// Parse decodes and validates a catalogue document.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrSchema, err.Error())
	}

	if raw.URL == nil {
		return nil, missingKey(KeyURL)
	}
	if raw.Index == nil {
		return nil, missingKey(KeyIndex)
	}
	if raw.Containers == nil {
		return nil, missingKey(KeyContainers)
	}

	doc := &Document{
		URL:        *raw.URL,
		Index:      nonNil(*raw.Index),
		Containers: nonNil(*raw.Containers),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseFromReader parses a catalogue document from an io.Reader.
func ParseFromReader(reader io.Reader) (*Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalogue data")
	}
	return Parse(data)
}

// Validate checks the invariants of a document: a non-empty URL, sane
// entries and disjoint categories.
func (d *Document) Validate() error {
	if d.URL == "" {
		return errors.Wrapf(errors.ErrSchema, "catalogue %s must not be empty", KeyURL)
	}
	for _, category := range []struct {
		key     string
		entries Category
	}{{KeyIndex, d.Index}, {KeyContainers, d.Containers}} {
		for name, entry := range category.entries {
			if name == "" {
				return errors.Wrapf(errors.ErrSchema, "empty file name in %s", category.key)
			}
			if entry.Size < 0 {
				return errors.Wrapf(errors.ErrSchema, "%s: negative size for %s", category.key, name)
			}
		}
	}

	var collisions []string
	for name := range d.Index {
		if _, ok := d.Containers[name]; ok {
			collisions = append(collisions, name)
		}
	}
	if len(collisions) > 0 {
		sort.Strings(collisions)
		return errors.Wrapf(errors.ErrSchema, "names listed in both %s and %s: %v", KeyIndex, KeyContainers, collisions)
	}
	return nil
}

// Encode serializes the document to YAML.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, errors.Wrap(err, "failed to marshal catalogue")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to marshal catalogue")
	}
	return buf.Bytes(), nil
}

// WriteFiles writes the document to cataloguePath and its MD5 digest to
// checksumPath. The checksum file holds the bare hex digest.
func (d *Document) WriteFiles(cataloguePath, checksumPath string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(cataloguePath, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "could not write catalogue %s", cataloguePath)
	}
	if err := os.WriteFile(checksumPath, []byte(HashBytes(data)), fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "could not write checksum %s", checksumPath)
	}
	return nil
}

func missingKey(key string) error {
	return errors.Wrap(errors.ErrSchema, fmt.Sprintf("cannot build repository catalogue without the %s key", key))
}

func nonNil(c Category) Category {
	if c == nil {
		return Category{}
	}
	return c
}
