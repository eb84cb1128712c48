package catalogue

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/glorpus-work/mdshare/pkg/errors"
)

// maxSetSize bounds the expansion of character ranges inside a bracket set.
const maxSetSize = 4096

// Matcher reports whether a catalogue name matches a compiled pattern.
type Matcher interface {
	Match(name string) bool
}

type never struct{}

func (never) Match(string) bool { return false }

// CompilePattern compiles a shell-style pattern with fnmatch semantics:
// "*" matches any run of characters including "/", "?" matches one
// character, "[abc]", "[a-z]" and "[!abc]" match sets. A "[" without a
// closing "]" and a backslash are ordinary characters.
func CompilePattern(pattern string) (Matcher, error) {
	translated, ok, err := translatePattern(pattern)
	if err != nil {
		return nil, err
	}
	if !ok {
		return never{}, nil
	}
	g, err := glob.Compile(translated)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration, "invalid pattern %q: %v", pattern, err)
	}
	return g, nil
}

// translatePattern rewrites an fnmatch pattern into glob syntax. ok is false
// when the pattern contains an empty set and can match nothing.
func translatePattern(pattern string) (string, bool, error) {
	pat := []rune(pattern)
	var b strings.Builder
	for i := 0; i < len(pat); {
		c := pat[i]
		i++
		switch c {
		case '*':
			for i < len(pat) && pat[i] == '*' {
				i++
			}
			b.WriteByte('*')
		case '?':
			b.WriteByte('?')
		case '[':
			j := i
			if j < len(pat) && pat[j] == '!' {
				j++
			}
			if j < len(pat) && pat[j] == ']' {
				j++
			}
			for j < len(pat) && pat[j] != ']' {
				j++
			}
			if j >= len(pat) {
				b.WriteString(glob.QuoteMeta("["))
				continue
			}
			set, ok, err := translateSet(pat[i:j])
			if err != nil {
				return "", false, errors.Wrapf(err, "invalid pattern %q", pattern)
			}
			if !ok {
				return "", false, nil
			}
			b.WriteString(set)
			i = j + 1
		default:
			b.WriteString(glob.QuoteMeta(string(c)))
		}
	}
	return b.String(), true, nil
}

// translateSet rewrites the contents of a bracket set.
func translateSet(content []rune) (string, bool, error) {
	negate := len(content) > 0 && content[0] == '!'
	if negate {
		content = content[1:]
	}

	type span struct{ lo, hi rune }
	var spans []span
	for k := 0; k < len(content); {
		if k+2 < len(content) && content[k+1] == '-' {
			if content[k] <= content[k+2] {
				spans = append(spans, span{content[k], content[k+2]})
			}
			k += 3
			continue
		}
		spans = append(spans, span{content[k], content[k]})
		k++
	}

	if len(spans) == 0 {
		if negate {
			return "?", true, nil
		}
		return "", false, nil
	}

	not := ""
	if negate {
		not = "!"
	}
	if len(spans) == 1 && spans[0].lo != spans[0].hi && (negate || spans[0].lo != '!') {
		return "[" + not + string(spans[0].lo) + "-" + string(spans[0].hi) + "]", true, nil
	}

	members := make(map[rune]struct{})
	for _, s := range spans {
		if int(s.hi-s.lo) >= maxSetSize || len(members) > maxSetSize {
			return "", false, errors.Wrap(errors.ErrConfiguration, "character set too large")
		}
		for r := s.lo; r <= s.hi; r++ {
			members[r] = struct{}{}
		}
	}
	chars := make([]rune, 0, len(members))
	for r := range members {
		chars = append(chars, r)
	}
	// '-' goes last so it never follows the first character as a range marker.
	sort.Slice(chars, func(a, b int) bool {
		if chars[a] == '-' || chars[b] == '-' {
			return chars[b] == '-' && chars[a] != '-'
		}
		return chars[a] < chars[b]
	})

	if len(chars) == 1 && chars[0] == '-' {
		return "[" + not + "-]", true, nil
	}
	var b strings.Builder
	b.WriteString("[" + not)
	for _, r := range chars {
		switch r {
		case '\\', ']', '!', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte(']')
	return b.String(), true, nil
}
