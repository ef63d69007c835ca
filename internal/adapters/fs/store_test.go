package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelhouse/internal/adapters/fs"
	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/zerr"
)

func newStore(t *testing.T) (*fs.Store, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "simple")
	return fs.NewStore(root, fs.NewWalker(), fs.NewHasher()), root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestStore_EnsureLayout(t *testing.T) {
	store, root := newStore(t)

	require.NoError(t, store.EnsureLayout([]string{"foo", "bar-baz"}))
	require.NoError(t, store.EnsureLayout([]string{"foo"}))

	assert.DirExists(t, root)
	assert.DirExists(t, filepath.Join(root, "foo"))
	assert.DirExists(t, filepath.Join(root, "bar-baz"))
	assert.Equal(t, root, store.Root())
}

func TestStore_EnsureLayout_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "simple")
	writeFile(t, blocker, "not a directory")

	store := fs.NewStore(blocker, fs.NewWalker(), fs.NewHasher())
	err := store.EnsureLayout([]string{"foo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrLayoutCreateFailed.Error())
}

func TestStore_List(t *testing.T) {
	store, root := newStore(t)
	dir := filepath.Join(root, "foo")
	writeFile(t, filepath.Join(dir, "foo-1.10.0-py3-none-any.whl"), "b")
	writeFile(t, filepath.Join(dir, "foo-1.2.0-py3-none-any.whl"), "a")
	writeFile(t, filepath.Join(dir, "index.html"), "<html>")
	writeFile(t, filepath.Join(dir, ".publish-123"), "partial")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.whl"), 0o750))

	names, err := store.List("foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo-1.10.0-py3-none-any.whl", "foo-1.2.0-py3-none-any.whl"}, names)
}

func TestStore_List_MissingPackage(t *testing.T) {
	store, _ := newStore(t)

	names, err := store.List("foo")
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestStore_Publish(t *testing.T) {
	store, root := newStore(t)
	require.NoError(t, store.EnsureLayout([]string{"bar-baz"}))
	src := filepath.Join(t.TempDir(), "dist", "bar_baz-1.0.0-py3-none-any.whl")
	writeFile(t, src, "wheel bytes")

	artifact, err := store.Publish("bar-baz", src)
	require.NoError(t, err)
	assert.Equal(t, domain.Artifact{
		Package:  "bar_baz",
		Version:  "1.0.0",
		Filename: "bar_baz-1.0.0-py3-none-any.whl",
	}, artifact)

	content, err := os.ReadFile(filepath.Join(root, "bar-baz", "bar_baz-1.0.0-py3-none-any.whl"))
	require.NoError(t, err)
	assert.Equal(t, "wheel bytes", string(content))

	names, err := store.List("bar-baz")
	require.NoError(t, err)
	assert.Equal(t, []string{"bar_baz-1.0.0-py3-none-any.whl"}, names)
}

func TestStore_Publish_Overwrites(t *testing.T) {
	store, root := newStore(t)
	require.NoError(t, store.EnsureLayout([]string{"foo"}))
	dst := filepath.Join(root, "foo", "foo-1.0.0-py3-none-any.whl")
	writeFile(t, dst, "old")
	src := filepath.Join(t.TempDir(), "foo-1.0.0-py3-none-any.whl")
	writeFile(t, src, "new")

	_, err := store.Publish("foo", src)
	require.NoError(t, err)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestStore_Publish_WrongPackage(t *testing.T) {
	store, _ := newStore(t)
	src := filepath.Join(t.TempDir(), "other-1.0.0-py3-none-any.whl")
	writeFile(t, src, "x")

	_, err := store.Publish("foo", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPackageMismatch.Error())
}

func TestStore_Publish_MissingSource(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.EnsureLayout([]string{"foo"}))

	_, err := store.Publish("foo", filepath.Join(t.TempDir(), "foo-1.0.0-py3-none-any.whl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPublishFailed.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Contains(t, zErr.Metadata(), "source")
}

func TestHasher_Digest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	writeFile(t, a, "same")
	writeFile(t, b, "same")
	writeFile(t, c, "different")

	h := fs.NewHasher()
	da, err := h.Digest(a)
	require.NoError(t, err)
	db, err := h.Digest(b)
	require.NoError(t, err)
	dc, err := h.Digest(c)
	require.NoError(t, err)

	assert.Len(t, da, 16)
	assert.Equal(t, da, db)
	assert.NotEqual(t, da, dc)

	_, err = h.Digest(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
