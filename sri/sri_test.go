package sri

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptySRI = "sha512-z4PhNX7vuL3xVChQ1m2AB9Yg5AULVxXcg/SpIdNs6c5H0NE8XYXysP+DGNKHfuwvY7kxvUdBeoGlODJ6+SfaPg=="

func TestCalculateSRI(t *testing.T) {
	assert.Equal(t, emptySRI, CalculateSRI(nil))
	assert.NotEqual(t, CalculateSRI([]byte("a")), CalculateSRI([]byte("b")))
}

func TestCalculateFileSRI(t *testing.T) {
	file := filepath.Join(t.TempDir(), "icon.webp")
	require.NoError(t, ioutil.WriteFile(file, []byte("RIFF"), 0644))

	got, err := CalculateFileSRI(file)
	require.NoError(t, err)
	assert.Equal(t, CalculateSRI([]byte("RIFF")), got)

	_, err = CalculateFileSRI(filepath.Join(t.TempDir(), "missing.webp"))
	assert.Error(t, err)
}
