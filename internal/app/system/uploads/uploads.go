// Package uploads stores member photos and scheme documents through the
// configured storage backend and enforces the portal's file constraints.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// File size and count limits.
const (
	MaxPhotoSize    = 5 << 20 // 5 MB
	MaxDocumentSize = 5 << 20
	MaxDocuments    = 5
)

var (
	ErrPhotoTooLarge    = errors.New("photo must be 5MB or smaller")
	ErrPhotoType        = errors.New("photo must be a jpg, jpeg or png file")
	ErrDocumentTooLarge = errors.New("each document must be 5MB or smaller")
	ErrTooManyDocuments = errors.New("a scheme can carry at most 5 documents")
)

var photoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var docExts = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// UploadInfo contains metadata about a stored file.
type UploadInfo struct {
	Path        string
	FileName    string
	Size        int64
	ContentType string
}

// Uploader wraps a storage backend with the portal's naming scheme and
// best-effort cleanup.
type Uploader struct {
	store storage.Store
	log   *zap.Logger
}

func New(store storage.Store, logger *zap.Logger) *Uploader {
	return &Uploader{store: store, log: logger}
}

// PutPhoto validates and stores a member photo. The stored path is
// photos/YYYY/MM/uuid-filename.
func (u *Uploader) PutPhoto(ctx context.Context, fh *multipart.FileHeader) (UploadInfo, error) {
	if fh.Size > MaxPhotoSize {
		return UploadInfo{}, ErrPhotoTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !photoExts[ext] {
		return UploadInfo{}, ErrPhotoType
	}
	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}
	return u.putFileHeader(ctx, "photos", fh, contentType)
}

// PutDocument validates and stores one scheme attachment. The stored path is
// documents/YYYY/MM/uuid-filename.
func (u *Uploader) PutDocument(ctx context.Context, fh *multipart.FileHeader) (UploadInfo, error) {
	if fh.Size > MaxDocumentSize {
		return UploadInfo{}, ErrDocumentTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := docExts[ext]
	if !ok {
		return UploadInfo{}, fmt.Errorf("unsupported document type %q", ext)
	}
	return u.putFileHeader(ctx, "documents", fh, contentType)
}

func (u *Uploader) putFileHeader(ctx context.Context, kind string, fh *multipart.FileHeader, contentType string) (UploadInfo, error) {
	f, err := fh.Open()
	if err != nil {
		return UploadInfo{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return u.put(ctx, kind, fh.Filename, f, fh.Size, contentType)
}

// put stores a file under kind/YYYY/MM/uuid-filename.
func (u *Uploader) put(ctx context.Context, kind, filename string, reader io.Reader, size int64, contentType string) (UploadInfo, error) {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("%s/%04d/%02d", kind, now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	path := filepath.ToSlash(filepath.Join(dateDir, uniqueName))

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := u.store.Put(ctx, path, reader, opts); err != nil {
		return UploadInfo{}, fmt.Errorf("failed to upload file: %w", err)
	}

	return UploadInfo{
		Path:        path,
		FileName:    filename,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Remove deletes a stored file, best effort. A failure is logged and
// swallowed so that record mutations never abort over a stray file; the
// worst case is an orphaned file on disk.
func (u *Uploader) Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := u.store.Delete(ctx, path); err != nil {
		u.log.Warn("file cleanup failed", zap.String("path", path), zap.Error(err))
	}
}

// sanitizeFilename removes or replaces characters that could be problematic
// in filenames.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		// Truncate but preserve extension if present
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
