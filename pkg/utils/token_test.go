package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateShareSlug(t *testing.T) {
	slug, err := GenerateShareSlug()
	require.NoError(t, err)
	require.Len(t, slug, ShareSlugBytes*2)

	_, err = hex.DecodeString(slug)
	require.NoError(t, err)
}

func TestGenerateShareSlugIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		slug, err := GenerateShareSlug()
		require.NoError(t, err)
		require.False(t, seen[slug], "slug collision after %d draws", i)
		seen[slug] = true
	}
}
