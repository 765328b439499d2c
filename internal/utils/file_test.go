package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestHasExtensionDefaults(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.Png", "d.bmp", "e.GIF"} {
		assert.True(t, HasExtension(name, DefaultImageExtensions), name)
	}
	for _, name := range []string{"a.webp", "notes.txt", "jpg", "archive.jpg.zip", ""} {
		assert.False(t, HasExtension(name, DefaultImageExtensions), name)
	}
}

func TestHasExtensionAcceptsDottedAllowList(t *testing.T) {
	assert.True(t, HasExtension("x.WEBP", []string{".webp"}))
	assert.False(t, HasExtension("x.webp", []string{"png"}))
}

func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.png"))
	touch(t, filepath.Join(dir, "a.JPG"))
	touch(t, filepath.Join(dir, "readme.md"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.jpg"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "output"), 0755))
	touch(t, filepath.Join(dir, "output", "combined_1.jpg"))

	files, err := ListImageFiles(dir, DefaultImageExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.JPG", "b.png"}, files)
}

func TestListImageFilesFollowsSymlinks(t *testing.T) {
	src := t.TempDir()
	touch(t, filepath.Join(src, "real.jpg"))
	require.NoError(t, os.Mkdir(filepath.Join(src, "album"), 0755))

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "plain.png"))
	require.NoError(t, os.Symlink(filepath.Join(src, "real.jpg"), filepath.Join(dir, "linked.jpg")))
	require.NoError(t, os.Symlink(filepath.Join(src, "album"), filepath.Join(dir, "album.jpg")))
	require.NoError(t, os.Symlink(filepath.Join(src, "gone.jpg"), filepath.Join(dir, "dangling.jpg")))

	files, err := ListImageFiles(dir, DefaultImageExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"linked.jpg", "plain.png"}, files)
}

func TestListImageFilesMissingDir(t *testing.T) {
	_, err := ListImageFiles(filepath.Join(t.TempDir(), "missing"), DefaultImageExtensions)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureDirIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	assert.True(t, DirExists(dir))
	assert.False(t, FileExists(dir))
}

func TestIsBareFilename(t *testing.T) {
	assert.True(t, IsBareFilename("combined_specific.jpg"))
	assert.False(t, IsBareFilename("../escape.jpg"))
	assert.False(t, IsBareFilename(`sub\name.jpg`))
	assert.False(t, IsBareFilename(".."))
	assert.False(t, IsBareFilename(""))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "2.0 MB", FormatFileSize(2*1024*1024))
}
