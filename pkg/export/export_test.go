package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaveUsesBlobFilename verifies Content-Disposition wins over fallback.
func TestSaveUsesBlobFilename(t *testing.T) {
	dir := t.TempDir()
	s := NewSaver(dir)

	path, err := s.Save(&api.Blob{Data: []byte("xlsx"), Filename: "orders-export.xlsx"}, "fallback.xlsx")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orders-export.xlsx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
}

// TestSaveFallbackName verifies the fallback name is used when the header is empty.
func TestSaveFallbackName(t *testing.T) {
	s := NewSaver(t.TempDir())

	path, err := s.Save(&api.Blob{Data: []byte("x")}, "backorders.xlsx")

	require.NoError(t, err)
	assert.Equal(t, "backorders.xlsx", filepath.Base(path))
}

// TestSaveSanitizesServerName verifies a hostile header cannot escape the dir.
func TestSaveSanitizesServerName(t *testing.T) {
	dir := t.TempDir()
	s := NewSaver(dir)

	path, err := s.Save(&api.Blob{Data: []byte("x"), Filename: "../../etc/passwd"}, "f.xlsx")

	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

// TestSaveDoesNotOverwrite verifies an existing file gets a numeric suffix.
func TestSaveDoesNotOverwrite(t *testing.T) {
	s := NewSaver(t.TempDir())

	first, err := s.Save(&api.Blob{Data: []byte("one"), Filename: "r.xlsx"}, "")
	require.NoError(t, err)
	second, err := s.Save(&api.Blob{Data: []byte("two"), Filename: "r.xlsx"}, "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "r-1.xlsx", filepath.Base(second))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}
