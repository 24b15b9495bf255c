package model

import "errors"

var (
	// ErrNotFound indicates a requested file is absent from the registry.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates a failed credential match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRemoteUnavailable indicates the object storage could not take the
	// upload. The upload pipeline absorbs it and downgrades to local-only.
	ErrRemoteUnavailable = errors.New("remote storage unavailable")
)
