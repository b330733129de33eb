package codes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrefix(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"acme", "ACME"},
		{"wellness-co", "WELL"},
		{"ab", "AB"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultPrefix(tt.slug))
	}
}

func TestNewCandidate(t *testing.T) {
	candidate, err := NewCandidate("ACME")
	require.NoError(t, err)

	assert.Len(t, candidate, 10)
	assert.True(t, strings.HasPrefix(candidate, "ACME"))

	for _, ch := range candidate[4:] {
		assert.Contains(t, codeAlphabet, string(ch))
	}

	// No visually ambiguous characters in the suffix
	assert.NotContains(t, candidate[4:], "0")
	assert.NotContains(t, candidate[4:], "O")
	assert.NotContains(t, candidate[4:], "1")
	assert.NotContains(t, candidate[4:], "I")
}

func TestGenerate(t *testing.T) {
	t.Run("first candidate free", func(t *testing.T) {
		calls := 0
		code, err := Generate("ACME", func(string) (bool, error) {
			calls++
			return false, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, strings.HasPrefix(code, "ACME"))
	})

	t.Run("retries on collision", func(t *testing.T) {
		calls := 0
		code, err := Generate("ACME", func(string) (bool, error) {
			calls++
			return calls < 3, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.NotEmpty(t, code)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		_, err := Generate("ACME", func(string) (bool, error) {
			calls++
			return true, nil
		})
		assert.ErrorIs(t, err, ErrGenerationExhausted)
		assert.Equal(t, 10, calls)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		wantErr := assert.AnError
		_, err := Generate("ACME", func(string) (bool, error) {
			return false, wantErr
		})
		assert.ErrorIs(t, err, wantErr)
	})
}
