package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inmobiliaria_api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_WritesSlugifiedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir, 1<<20)
	require.NoError(t, err)

	name, err := store.Save("Frente de la Casa.JPG", bytes.NewReader([]byte("bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "frente-de-la-casa-"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), data)
}

func TestSave_NamesDoNotCollide(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	first, err := store.Save("foto.png", bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	second, err := store.Save("foto.png", bytes.NewReader([]byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSave_RejectsUnsupportedExtension(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	for _, name := range []string{"script.exe", "doc.pdf", "sinextension"} {
		_, err := store.Save(name, bytes.NewReader([]byte("x")))
		assert.ErrorIs(t, err, common.ErrValidation, name)
	}
}

func TestSave_RejectsOversizedPayload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir, 10)
	require.NoError(t, err)

	_, err = store.Save("grande.jpg", bytes.NewReader(bytes.Repeat([]byte("x"), 11)))
	assert.ErrorIs(t, err, common.ErrValidation)

	// Nothing should be left behind on disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_FallbackNameForUnsluggableBase(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	name, err := store.Save("....jpg", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "imagen-"))
}
