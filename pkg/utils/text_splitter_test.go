package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitText(t *testing.T) {
	assert.Nil(t, SplitText("   ", 100, 10))
	assert.Equal(t, []string{"short text"}, SplitText(" short text ", 100, 10))

	words := strings.Repeat("lorem ipsum dolor ", 100)
	chunks := SplitText(words, 200, 40)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 200)
		assert.False(t, strings.HasPrefix(c, " "))
	}
	// cuts land on word boundaries
	for _, c := range chunks[:len(chunks)-1] {
		last := c[strings.LastIndex(c, " ")+1:]
		assert.Contains(t, []string{"lorem", "ipsum", "dolor"}, last)
	}
	assert.True(t, strings.HasSuffix(chunks[len(chunks)-1], "dolor"))
}

func TestSplitTextWithoutSpaces(t *testing.T) {
	chunks := SplitText(strings.Repeat("x", 250), 100, 0)
	assert.Equal(t, []int{100, 100, 50}, []int{len(chunks[0]), len(chunks[1]), len(chunks[2])})
}

func TestStripFrontmatter(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"no frontmatter", "# Title\nbody", "# Title\nbody"},
		{"frontmatter", "---\ntitle: Hi\n---\n# Title\nbody", "# Title\nbody"},
		{"bom and frontmatter", "\ufeff---\ntitle: Hi\n---\n\nbody", "body"},
		{"unterminated", "---\ntitle: Hi\nbody", "---\ntitle: Hi\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFrontmatter(tt.in))
		})
	}
}
