package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/jxnhiro/blog-api/internal/errors"
)

// pngPixel is a 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestDiskStore_StoreAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	assert.NoError(t, err)

	imagePath, err := store.Store(bytes.NewReader(pngPixel))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(imagePath, URLPrefix+"/"))
	assert.True(t, strings.HasSuffix(imagePath, ".png"))

	onDisk := filepath.Join(dir, filepath.Base(imagePath))
	data, err := os.ReadFile(onDisk)
	assert.NoError(t, err)
	assert.Equal(t, pngPixel, data)

	assert.NoError(t, store.Delete(imagePath))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_UniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	first, err := store.Store(bytes.NewReader(pngPixel))
	assert.NoError(t, err)
	second, err := store.Store(bytes.NewReader(pngPixel))
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDiskStore_RejectsNonImage(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Store(strings.NewReader("definitely not an image"))
	assert.True(t, apperrors.IsKind(err, apperrors.Validation))
}

func TestDiskStore_DeleteMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	err = store.Delete("images/nope.png")
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}
