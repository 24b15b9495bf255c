package local

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fileshare-server/internal/model"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore_SaveListOpen(t *testing.T) {
	s := newStore(t)

	_, err := s.Save("report.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	_, err = s.Save("notes.txt", strings.NewReader("notes"))
	require.NoError(t, err)

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt", "report.pdf"}, names)

	rc, err := s.Open("report.pdf")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
}

func TestStore_EmptyList(t *testing.T) {
	s := newStore(t)

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_OverwriteLastWriteWins(t *testing.T) {
	s := newStore(t)

	_, err := s.Save("report.pdf", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = s.Save("report.pdf", strings.NewReader("second"))
	require.NoError(t, err)

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"report.pdf"}, names)

	rc, err := s.Open("report.pdf")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestStore_OpenNotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.Open("missing.pdf")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_SaveSanitizesTraversal(t *testing.T) {
	s := newStore(t)

	_, err := s.Save("../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"passwd"}, names)
}

func TestStore_SaveRejectsUnusableName(t *testing.T) {
	s := newStore(t)

	for _, name := range []string{"", ".", "..", "   "} {
		_, err := s.Save(name, strings.NewReader("x"))
		assert.Error(t, err, "name %q", name)
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "report.pdf", Sanitize("report.pdf"))
	assert.Equal(t, "report.pdf", Sanitize("a/b/report.pdf"))
	assert.Equal(t, "passwd", Sanitize("../../etc/passwd"))
	assert.Equal(t, "", Sanitize(".."))
	assert.Equal(t, "", Sanitize(""))
}
