package catalogue

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/glorpus-work/mdshare/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Template describes how to build a catalogue from a directory of files.
//
//	url: https://example.org/data/
//	name: my-catalogue
//	include: ["*.npz", "*.pdb"]
//	containers:
//	  bundle.tar.gz: ["*.npz"]
type Template struct {
	URL        string              `yaml:"url"`
	Name       string              `yaml:"name"`
	Include    []string            `yaml:"include"`
	Containers map[string][]string `yaml:"containers"`
}

type rawTemplate struct {
	URL        *string              `yaml:"url"`
	Name       *string              `yaml:"name"`
	Include    *[]string            `yaml:"include"`
	Containers *map[string][]string `yaml:"containers"`
}

// ParseTemplate decodes and validates a build template.
func ParseTemplate(data []byte) (*Template, error) {
	var raw rawTemplate
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrSchema, err.Error())
	}
	switch {
	case raw.URL == nil:
		return nil, templateMissing(KeyURL)
	case raw.Include == nil:
		return nil, templateMissing("include")
	case raw.Containers == nil:
		return nil, templateMissing(KeyContainers)
	case raw.Name == nil || *raw.Name == "":
		return nil, templateMissing("name")
	}
	return &Template{
		URL:        *raw.URL,
		Name:       *raw.Name,
		Include:    *raw.Include,
		Containers: *raw.Containers,
	}, nil
}

// LoadTemplate reads a build template from path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read template %s", path)
	}
	return ParseTemplate(data)
}

// Archiver creates container archives from a list of files.
type Archiver interface {
	Create(ctx context.Context, archivePath string, files []string) error
}

// Builder produces a catalogue document and its checksum from the files of Dir.
type Builder struct {
	// Dir holds the files to catalogue. Containers and output documents are
	// written there as well.
	Dir      string
	Template *Template
	Archiver Archiver
}

// NewBuilder creates a Builder for dir.
func NewBuilder(dir string, tmpl *Template, archiver Archiver) *Builder {
	return &Builder{Dir: dir, Template: tmpl, Archiver: archiver}
}

// Result names the files written by Build.
type Result struct {
	Document      *Document
	CataloguePath string
	ChecksumPath  string
}

// Build catalogues every file matching an include pattern, builds each
// declared container from the matching subset of those files, and writes
// <name>.yaml and <name>.md5.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	if b.Template == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "no build template")
	}
	if b.Archiver == nil && len(b.Template.Containers) > 0 {
		return nil, errors.Wrap(errors.ErrConfiguration, "no archiver for containers")
	}

	listing, err := listFiles(b.Dir)
	if err != nil {
		return nil, err
	}
	listing = withoutOutputs(listing, b.outputs())
	included, err := filterFiles(listing, b.Template.Include)
	if err != nil {
		return nil, err
	}

	doc := &Document{URL: b.Template.URL, Index: Category{}, Containers: Category{}}
	for _, name := range included {
		entry, err := describe(filepath.Join(b.Dir, name))
		if err != nil {
			return nil, err
		}
		doc.Index[name] = entry
	}

	containers := make([]string, 0, len(b.Template.Containers))
	for name := range b.Template.Containers {
		containers = append(containers, name)
	}
	sort.Strings(containers)

	for _, container := range containers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		members, err := filterFiles(included, b.Template.Containers[container])
		if err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(members))
		for _, m := range members {
			paths = append(paths, filepath.Join(b.Dir, m))
		}
		archivePath := filepath.Join(b.Dir, container)
		if err := b.Archiver.Create(ctx, archivePath, paths); err != nil {
			return nil, errors.Wrapf(err, "failed to build container %s", container)
		}
		entry, err := describe(archivePath)
		if err != nil {
			return nil, err
		}
		doc.Containers[container] = entry
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Document:      doc,
		CataloguePath: filepath.Join(b.Dir, b.cataloguePath()),
		ChecksumPath:  filepath.Join(b.Dir, b.checksumPath()),
	}
	if err := doc.WriteFiles(res.CataloguePath, res.ChecksumPath); err != nil {
		return nil, err
	}
	return res, nil
}

func (b *Builder) cataloguePath() string { return b.Template.Name + ".yaml" }
func (b *Builder) checksumPath() string  { return b.Template.Name + ".md5" }

// outputs names the files Build writes into Dir. A previous build leaves
// them behind, so they are never catalogued as plain files.
func (b *Builder) outputs() map[string]struct{} {
	out := map[string]struct{}{
		b.cataloguePath(): {},
		b.checksumPath():  {},
	}
	for name := range b.Template.Containers {
		out[name] = struct{}{}
	}
	return out
}

func withoutOutputs(files []string, outputs map[string]struct{}) []string {
	kept := files[:0]
	for _, f := range files {
		if _, ok := outputs[f]; !ok {
			kept = append(kept, f)
		}
	}
	return kept
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list %s", dir)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// filterFiles keeps the files matching at least one pattern, sorted.
func filterFiles(files []string, patterns []string) ([]string, error) {
	set := make(Category, len(files))
	for _, f := range files {
		set[f] = Entry{}
	}
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := set.Search(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

func describe(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, errors.Wrapf(err, "cannot stat %s", path)
	}
	hash, err := FileHash(path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Hash: hash, Size: info.Size()}, nil
}

func templateMissing(key string) error {
	return errors.Wrapf(errors.ErrSchema, "cannot build without the %s key", key)
}
