package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dtroode/fileshare-server/internal/logger"
	"github.com/dtroode/fileshare-server/internal/model"
	"github.com/dtroode/fileshare-server/internal/storage/local"
)

// remotePutTimeout bounds the object storage call so an unreachable
// bucket cannot stall the upload response.
const remotePutTimeout = 30 * time.Second

// File is the upload pipeline. It composes the local store, the remote
// storage adapter and the event broadcaster into one observable result:
// a successful local write always yields a published event and a
// non-error outcome, whatever the remote does.
type File struct {
	local       model.LocalStore
	remote      model.Storage
	broadcaster model.Broadcaster
	logger      *logger.Logger
}

func NewFile(
	local model.LocalStore,
	remote model.Storage,
	broadcaster model.Broadcaster,
	logger *logger.Logger,
) *File {
	return &File{
		local:       local,
		remote:      remote,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Upload persists the content locally under the sanitized client-supplied
// name (same-name uploads overwrite, last-write-wins), mirrors it to
// remote storage, and publishes exactly one upload event. A remote
// failure downgrades the result to local-only; it never fails the upload.
func (s *File) Upload(ctx context.Context, filename string, r io.Reader) (model.UploadResult, error) {
	name := local.Sanitize(filename)
	if name == "" {
		return model.UploadResult{}, fmt.Errorf("unusable filename %q", filename)
	}

	path, err := s.local.Save(name, r)
	if err != nil {
		return model.UploadResult{}, fmt.Errorf("failed to persist upload: %w", err)
	}

	result := model.UploadResult{
		Status:   model.UploadStatusLocalOnly,
		Filename: name,
	}

	if key, err := s.putRemote(ctx, name, path); err != nil {
		s.logger.Warn("File service: remote put failed, keeping local copy",
			"filename", name,
			"error", err.Error())
	} else {
		result.Status = model.UploadStatusFullySynced
		result.RemoteKey = key
	}

	s.broadcaster.Publish(model.UploadEvent{Filename: name})

	s.logger.Info("File service: upload completed",
		"filename", name,
		"status", string(result.Status))

	return result, nil
}

func (s *File) putRemote(ctx context.Context, key, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to reopen local copy: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat local copy: %w", err)
	}

	putCtx, cancel := context.WithTimeout(ctx, remotePutTimeout)
	defer cancel()

	return s.remote.Put(putCtx, key, f, info.Size())
}

// List enumerates the file registry.
func (s *File) List(ctx context.Context) ([]string, error) {
	names, err := s.local.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return names, nil
}

// Fetch streams a registered file. A local miss falls back to the remote
// mirror, so a file lost from disk stays retrievable as long as its put
// succeeded; only when both sides miss does it report model.ErrNotFound.
func (s *File) Fetch(ctx context.Context, filename string) (io.ReadCloser, error) {
	rc, err := s.local.Open(filename)
	if err == nil {
		return rc, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return s.fetchRemote(ctx, filename)
}

func (s *File) fetchRemote(ctx context.Context, filename string) (io.ReadCloser, error) {
	key := local.Sanitize(filename)
	if key == "" {
		return nil, model.ErrNotFound
	}

	// Probe existence first so a missing key maps to not-found instead of
	// surfacing as a stream error.
	exists, err := s.remote.Exists(ctx, key)
	if err != nil {
		s.logger.Warn("File service: remote lookup failed",
			"filename", key,
			"error", err.Error())
		return nil, model.ErrNotFound
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	rc, err := s.remote.Get(ctx, key)
	if err != nil {
		s.logger.Warn("File service: remote fetch failed",
			"filename", key,
			"error", err.Error())
		return nil, model.ErrNotFound
	}

	s.logger.Info("File service: serving remote copy",
		"filename", key)

	return rc, nil
}
