package catalogue

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Entry describes one fetchable file of a catalogue.
type Entry struct {
	Hash string `yaml:"hash"`
	Size int64  `yaml:"size"`
}

// Category maps file names to their catalogue entries. A catalogue has two
// categories: plain files (index) and archive containers.
type Category map[string]Entry

// Names returns the names of the category in lexicographic order.
func (c Category) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search returns the sorted names matching a shell-style pattern, see
// CompilePattern.
func (c Category) Search(pattern string) ([]string, error) {
	m, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	matches := make([]string, 0)
	for _, name := range c.Names() {
		if m.Match(name) {
			matches = append(matches, name)
		}
	}
	return matches, nil
}

// String lists every entry, sorted by name, with a human readable size.
func (c Category) String() string {
	var b strings.Builder
	for _, name := range c.Names() {
		value, unit := FormatSize(c[name].Size)
		fmt.Fprintf(&b, "%-50s   %6.1f %s\n", name, value, unit)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSize splits a byte count into a value and an SI unit, e.g. 12.3 kB.
func FormatSize(size int64) (float64, string) {
	value, prefix := humanize.ComputeSI(float64(size))
	return value, prefix + "B"
}
