package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cinecraft/internal/domain"
	"cinecraft/internal/metrics"
	"cinecraft/internal/upload"
	"cinecraft/internal/utils"
)

// FileInput is one file taken off a multipart request.
type FileInput struct {
	Name string
	Size int64
	Body io.Reader
}

// UploadService validates media and hands it to the configured Storage.
// The content type is sniffed from the bytes, not taken from the client.
type UploadService struct {
	Storage      upload.Storage
	MaxSize      int64
	AllowedTypes []string
	RequestID    string
}

func (s UploadService) options() upload.Options {
	return upload.Options{MaxSize: s.MaxSize, AllowedTypes: s.AllowedTypes}
}

func (s UploadService) Upload(ctx context.Context, in FileInput, folder string) (upload.Stored, error) {
	if s.Storage == nil {
		return upload.Stored{}, domain.InternalError{Msg: "upload storage not configured"}
	}
	if in.Body == nil || in.Size == 0 {
		metrics.UploadRejected()
		return upload.Stored{}, fieldError("file", "No file uploaded")
	}
	ct, body, err := upload.Detect(in.Body)
	if err != nil {
		metrics.UploadFailed()
		return upload.Stored{}, domain.InternalError{Err: err}
	}
	if err := upload.ValidateFile(ct, in.Size, s.options()); err != nil {
		metrics.UploadRejected()
		return upload.Stored{}, fieldError("file", err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, upload.Timeout)
	defer cancel()
	stored, err := s.Storage.Save(ctx, upload.Object{
		Name:        strings.TrimSpace(in.Name),
		ContentType: ct,
		Size:        in.Size,
		Folder:      folder,
		Body:        body,
	})
	if err != nil {
		metrics.UploadFailed()
		return upload.Stored{}, domain.InternalError{Msg: "upload failed", Err: err}
	}
	metrics.UploadSucceeded(stored.Size)
	utils.LogEvent(s.RequestID, "upload", "save", fmt.Sprintf("public_id=%s type=%s size=%s", stored.PublicID, ct, upload.FormatFileSize(stored.Size)))
	return stored, nil
}

// UploadMany stores files in order; on failure the ones already saved are removed.
func (s UploadService) UploadMany(ctx context.Context, files []FileInput, folder string) ([]upload.Stored, error) {
	if len(files) == 0 {
		return nil, fieldError("files", "No files uploaded")
	}
	out := make([]upload.Stored, 0, len(files))
	for _, f := range files {
		st, err := s.Upload(ctx, f, folder)
		if err != nil {
			for _, done := range out {
				if derr := s.Storage.Delete(context.WithoutCancel(ctx), done.PublicID); derr != nil {
					utils.LogError(s.RequestID, "upload", "rollback", derr)
				}
			}
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s UploadService) Delete(ctx context.Context, publicID string) error {
	if s.Storage == nil {
		return domain.InternalError{Msg: "upload storage not configured"}
	}
	err := s.Storage.Delete(ctx, strings.TrimSpace(publicID))
	switch {
	case err == nil:
		utils.LogEvent(s.RequestID, "upload", "delete", "public_id="+publicID)
		return nil
	case errors.Is(err, upload.ErrInvalidPublicID):
		return fieldError("public_id", "Invalid public id")
	case errors.Is(err, os.ErrNotExist):
		return domain.NotFoundError{Resource: "file", Err: err}
	}
	return domain.InternalError{Err: err}
}
