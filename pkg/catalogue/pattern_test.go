package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		match   bool
	}{
		{"*.txt", "sub/a.txt", true},
		{"*", "a/b/c", true},
		{"sub/*", "sub/deep/x.npz", true},
		{"?.txt", "a.txt", true},
		{"?.txt", "/.txt", true},
		{"?.txt", "ab.txt", false},
		{"x[1.txt", "x[1.txt", true},
		{"x[1.txt", "x1.txt", false},
		{"[", "[", true},
		{"a]b", "a]b", true},
		{`a\b`, `a\b`, true},
		{`a\*`, `a\xyz`, true},
		{"{a,b}", "{a,b}", true},
		{"{a,b}", "a", false},
		{"[abc].npz", "b.npz", true},
		{"[abc].npz", "d.npz", false},
		{"[!abc].npz", "d.npz", true},
		{"[!abc].npz", "a.npz", false},
		{"[a-c]x", "bx", true},
		{"[a-c]x", "dx", false},
		{"[!a-c]x", "dx", true},
		{"[a-cx-z]", "y", true},
		{"[a-cx-z]", "m", false},
		{"[!a-cx-z]", "m", true},
		{"[]]", "]", true},
		{"[!]]", "a", true},
		{"[!]]", "]", false},
		{"[a-]", "-", true},
		{"[-]", "-", true},
		{"[!-]", "a", true},
		{"[!-]", "-", false},
		{"[!]", "[!]", true},
		{"[!!]", "!", false},
		{"[!!]", "a", true},
		{"[!a]", "!", true},
		{"[\\]", "\\", true},
		{"[!-z]", "a", true},
		{"[!-z]", "A", true},
		{"[!-z]", "-", false},
		{"[z-a]", "z", false},
		{"[!z-a]", "q", true},
		{"mdshare-test-0[01].txt", "mdshare-test-01.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.name, func(t *testing.T) {
			m, err := CompilePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.match, m.Match(tt.name))
		})
	}
}
