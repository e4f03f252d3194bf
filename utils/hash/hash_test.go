package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthor(t *testing.T) {
	hashed, err := Author("Alice")
	require.NoError(t, err)

	assert.NotEqual(t, "Alice", hashed)
	assert.True(t, MatchAuthor(hashed, "Alice"))
	assert.False(t, MatchAuthor(hashed, "Bob"))
}
