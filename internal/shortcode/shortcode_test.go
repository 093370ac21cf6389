package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"too short", MinLength - 1, true},
		{"too long", MaxLength + 1, true},
		{"min", MinLength, false},
		{"default", DefaultLength, false},
		{"max", MaxLength, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := New(tt.length)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, gen)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.length, gen.Length())
		})
	}
}

func TestGenerator_Generate(t *testing.T) {
	gen, err := New(DefaultLength)
	require.NoError(t, err)

	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)

		assert.Len(t, code, DefaultLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q", r)
		}

		seen[code] = struct{}{}
	}

	// 62^6 codes, 1000 draws: a repeat would point at a broken source.
	assert.Len(t, seen, 1000)
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 62)

	unique := make(map[rune]struct{})
	for _, r := range Alphabet {
		unique[r] = struct{}{}
	}
	assert.Len(t, unique, 62)
}
