package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/dtroode/fileshare-server/internal/logger"
	"github.com/dtroode/fileshare-server/internal/model"
)

// FileService defines upload pipeline and file registry operations.
type FileService interface {
	Upload(ctx context.Context, filename string, r io.Reader) (model.UploadResult, error)
	List(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, filename string) (io.ReadCloser, error)
}

// File handles HTTP endpoints for the upload pipeline and file registry.
type File struct {
	fileService    FileService
	maxUploadBytes int64
	logger         *logger.Logger
}

// NewFile creates a new File handler.
func NewFile(fileService FileService, maxUploadBytes int64, logger *logger.Logger) *File {
	return &File{
		fileService:    fileService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type uploadResponse struct {
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	RemoteKey string `json:"remoteKey,omitempty"`
}

// Upload handles POST /auth/upload. The multipart field "file" carries
// the payload; a missing payload is a structured outcome, not a fault.
// The response message distinguishes a fully synced upload from a
// local-only one without exposing internal error text.
func (h *File) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	var filePart io.Reader
	var filename string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*http.MaxBytesError); ok {
				writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		if part.FormName() != "file" {
			continue
		}
		filePart = part
		filename = part.FileName()
		break
	}

	if filePart == nil || filename == "" {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	result, err := h.fileService.Upload(r.Context(), filename, filePart)
	if err != nil {
		// The size limit usually trips while the service streams the part,
		// so the limit error comes back wrapped in the service error.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.logger.Error("File handler: upload failed",
			"filename", filename,
			"error", err.Error())
		handleError(w, err)
		return
	}

	resp := uploadResponse{
		Filename:  result.Filename,
		RemoteKey: result.RemoteKey,
	}
	switch result.Status {
	case model.UploadStatusFullySynced:
		resp.Message = "File uploaded successfully"
	default:
		resp.Message = "File stored locally; remote storage unavailable"
	}

	writeJSON(w, http.StatusOK, resp)
}

type listResponse struct {
	Files []string `json:"files"`
}

// List handles GET /auth/files.
func (h *File) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.fileService.List(r.Context())
	if err != nil {
		h.logger.Error("File handler: list failed",
			"error", err.Error())
		handleError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, listResponse{Files: names})
}

// Download handles GET /auth/files/{filename}.
func (h *File) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	rc, err := h.fileService.Fetch(r.Context(), filename)
	if err != nil {
		handleError(w, err)
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("File handler: download interrupted",
			"filename", filename,
			"error", err.Error())
	}
}

type processImageRequest struct {
	Filename string `json:"filename"`
}

// ProcessImage handles POST /auth/process-image. Image processing is a
// stub pending a real pipeline trigger.
func (h *File) ProcessImage(w http.ResponseWriter, r *http.Request) {
	var req processImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("Image %s processed", req.Filename))
}
