package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fileshare-server/internal/model"
	"github.com/dtroode/fileshare-server/internal/storage/local"
	"github.com/dtroode/fileshare-server/internal/testutil"
)

// fakeRemote implements model.Storage in memory.
type fakeRemote struct {
	putErr    error
	lookupErr error
	objects   map[string][]byte
	puts      int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{objects: map[string][]byte{}}
}

func (f *fakeRemote) Put(_ context.Context, key string, reader io.Reader, _ int64) (string, error) {
	f.puts++
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	return key, nil
}

func (f *fakeRemote) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (f *fakeRemote) Exists(_ context.Context, key string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	_, ok := f.objects[key]
	return ok, nil
}

// recordingBroadcaster implements model.Broadcaster and records events.
type recordingBroadcaster struct {
	events []model.UploadEvent
}

func (r *recordingBroadcaster) Publish(event model.UploadEvent) {
	r.events = append(r.events, event)
}

func (r *recordingBroadcaster) Subscribe() (<-chan model.UploadEvent, func()) {
	ch := make(chan model.UploadEvent)
	close(ch)
	return ch, func() {}
}

func newFileService(t *testing.T, remote model.Storage) (*File, *recordingBroadcaster) {
	t.Helper()
	store, err := local.New(t.TempDir())
	require.NoError(t, err)
	b := &recordingBroadcaster{}
	return NewFile(store, remote, b, testutil.MakeNoopLogger()), b
}

func TestFile_Upload_FullySynced(t *testing.T) {
	remote := newFakeRemote()
	s, b := newFileService(t, remote)

	result, err := s.Upload(context.Background(), "report.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	assert.Equal(t, model.UploadStatusFullySynced, result.Status)
	assert.Equal(t, "report.pdf", result.Filename)
	assert.Equal(t, "report.pdf", result.RemoteKey)
	assert.Equal(t, []byte("pdf bytes"), remote.objects["report.pdf"])

	require.Len(t, b.events, 1)
	assert.Equal(t, "report.pdf", b.events[0].Filename)
}

func TestFile_Upload_LocalOnlyOnRemoteFailure(t *testing.T) {
	remote := newFakeRemote()
	remote.putErr = model.ErrRemoteUnavailable
	s, b := newFileService(t, remote)

	result, err := s.Upload(context.Background(), "report.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err, "remote failure must not abort the upload")

	assert.Equal(t, model.UploadStatusLocalOnly, result.Status)
	assert.Equal(t, "report.pdf", result.Filename)
	assert.Empty(t, result.RemoteKey)

	// The file is still registered locally and exactly one event fired.
	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"report.pdf"}, names)
	require.Len(t, b.events, 1)
	assert.Equal(t, "report.pdf", b.events[0].Filename)
}

func TestFile_Upload_UnusableName(t *testing.T) {
	s, b := newFileService(t, newFakeRemote())

	_, err := s.Upload(context.Background(), "..", strings.NewReader("x"))
	require.Error(t, err)
	assert.Empty(t, b.events, "no event without a local write")
}

func TestFile_Upload_SameNameOverwrites(t *testing.T) {
	remote := newFakeRemote()
	s, b := newFileService(t, remote)

	_, err := s.Upload(context.Background(), "report.pdf", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = s.Upload(context.Background(), "report.pdf", strings.NewReader("second"))
	require.NoError(t, err)

	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"report.pdf"}, names)
	assert.Equal(t, []byte("second"), remote.objects["report.pdf"])
	assert.Len(t, b.events, 2, "each successful local write publishes once")
}

func TestFile_ListAndFetch(t *testing.T) {
	s, _ := newFileService(t, newFakeRemote())

	uploads := []string{"a.txt", "b.txt", "c.txt"}
	for _, name := range uploads {
		_, err := s.Upload(context.Background(), name, strings.NewReader("content of "+name))
		require.NoError(t, err)
	}

	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uploads, names)

	rc, err := s.Fetch(context.Background(), "b.txt")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content of b.txt", string(content))
}

func TestFile_Fetch_NotFound(t *testing.T) {
	s, _ := newFileService(t, newFakeRemote())

	_, err := s.Fetch(context.Background(), "missing.pdf")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestFile_Fetch_RemoteFallbackOnLocalMiss(t *testing.T) {
	remote := newFakeRemote()
	remote.objects["report.pdf"] = []byte("pdf bytes")
	s, _ := newFileService(t, remote)

	// Nothing on local disk, so the fetch must come from the mirror.
	rc, err := s.Fetch(context.Background(), "report.pdf")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
}

func TestFile_Fetch_NotFoundWhenRemoteUnavailable(t *testing.T) {
	remote := newFakeRemote()
	remote.lookupErr = model.ErrRemoteUnavailable
	s, _ := newFileService(t, remote)

	_, err := s.Fetch(context.Background(), "report.pdf")
	require.ErrorIs(t, err, model.ErrNotFound,
		"an unreachable mirror must not leak internal errors to the client")
}
