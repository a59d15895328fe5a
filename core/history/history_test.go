package history

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

const testPath = "/home/user/" + FileName

// deniedFs refuses to open one path, as if its permissions forbid reading.
type deniedFs struct {
	afero.Fs
	path string
}

func (d *deniedFs) Open(name string) (afero.File, error) {
	if name == d.path {
		return nil, &os.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return d.Fs.Open(name)
}

func TestLoad_missingFile(t *testing.T) {
	h := New(afero.NewMemMapFs(), testPath, 0)

	assert.NoError(t, h.Load())
	assert.Empty(t, h.Entries())
}

func TestLoad_existingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, testPath, []byte("a = 1\n\nprint(a)\n"), 0600))

	h := New(fs, testPath, 0)
	assert.NoError(t, h.Load())

	assert.Equal(t, []string{"a = 1", "print(a)"}, h.Entries())
}

func TestLoad_unreadableFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(mem, testPath, []byte("secret\n"), 0600))

	h := New(&deniedFs{Fs: mem, path: testPath}, testPath, 0)
	err := h.Load()

	assert.True(t, errors.Is(err, fs.ErrPermission), "got %v", err)
	assert.Empty(t, h.Entries())
}

func TestSave_readOnly(t *testing.T) {
	h := New(afero.NewReadOnlyFs(afero.NewMemMapFs()), testPath, 0)
	h.Add("x")

	assert.Error(t, h.Save())
}

func TestSave_roundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, testPath, []byte("old\n"), 0600))

	h := New(fs, testPath, 0)
	assert.NoError(t, h.Load())
	h.Add("new")
	h.Add("   ")
	h.Add("")
	assert.NoError(t, h.Save())

	contents, err := afero.ReadFile(fs, testPath)
	assert.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(contents))

	reloaded := New(fs, testPath, 0)
	assert.NoError(t, reloaded.Load())
	assert.Equal(t, []string{"old", "new"}, reloaded.Entries())
}

func TestSave_createsDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := New(fs, "/nested/dir/history", 0)
	h.Add("x")

	assert.NoError(t, h.Save())

	exists, err := afero.Exists(fs, "/nested/dir/history")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestSave_limit(t *testing.T) {
	fs := afero.NewMemMapFs()
	h := New(fs, testPath, 2)
	for _, line := range []string{"one", "two", "three"} {
		h.Add(line)
	}

	assert.NoError(t, h.Save())

	contents, err := afero.ReadFile(fs, testPath)
	assert.NoError(t, err)
	assert.Equal(t, "two\nthree\n", string(contents))

	// Memory keeps everything until the next session.
	assert.Equal(t, 3, h.Len())
}

func TestTail(t *testing.T) {
	h := New(afero.NewMemMapFs(), testPath, 0)
	for _, line := range []string{"one", "two", "three"} {
		h.Add(line)
	}

	cases := map[string]struct {
		n        int
		expected []string
	}{
		"zero":     {0, []string{"one", "two", "three"}},
		"some":     {2, []string{"two", "three"}},
		"too-many": {10, []string{"one", "two", "three"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, h.Tail(tc.n))
		})
	}
}

func TestClear(t *testing.T) {
	h := New(afero.NewMemMapFs(), testPath, 0)
	h.Add("one")
	h.Clear()

	assert.Equal(t, 0, h.Len())
}
