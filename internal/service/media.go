// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/brightpathhr/brightpath/internal/imaging"
	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
	"github.com/brightpathhr/brightpath/internal/util"
)

// Upload validation errors. Handlers map these to 400 responses.
var (
	ErrFileTooLarge    = fmt.Errorf("file size exceeds maximum allowed (%d bytes)", model.MaxUploadSize)
	ErrUnsupportedType = errors.New("file type is not allowed")
)

// ErrMediaNotFound is returned when a media item does not exist.
var ErrMediaNotFound = errors.New("media not found")

// MediaService handles media file uploads and deletion. Stored filenames
// are UUID-based so client-supplied names never reach the filesystem.
type MediaService struct {
	queries   *store.Queries
	processor *imaging.Processor
	uploadDir string
}

// NewMediaService creates a MediaService rooted at uploadDir.
func NewMediaService(queries *store.Queries, uploadDir string) *MediaService {
	return &MediaService{
		queries:   queries,
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload validates, processes, and stores an uploaded image. The original
// client filename is kept only as metadata.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, uploadedBy *int64) (store.Media, error) {
	if header.Size > model.MaxUploadSize {
		return store.Media{}, ErrFileTooLarge
	}

	mimeType := header.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}
	if mimeType == "" {
		mimeType = mimeTypeFromExtension(header.Filename)
	}
	if !model.IsSupportedMimeType(mimeType) {
		return store.Media{}, ErrUnsupportedType
	}

	// Stored name: fresh UUID plus the original extension.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = extensionForMimeType(mimeType)
	}
	filename := uuid.New().String() + ext

	processed, err := s.processor.ProcessImage(file, filename)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported image format") {
			return store.Media{}, ErrUnsupportedType
		}
		return store.Media{}, fmt.Errorf("processing image: %w", err)
	}

	media, err := s.queries.CreateMedia(ctx, store.CreateMediaParams{
		Filename:     filename,
		OriginalName: filepath.Base(header.Filename),
		MimeType:     processed.MimeType,
		FileSize:     processed.Size,
		FilePath:     processed.FilePath,
		Width:        sql.NullInt64{Int64: int64(processed.Width), Valid: true},
		Height:       sql.NullInt64{Int64: int64(processed.Height), Valid: true},
		Tags:         "[]",
		UploadedBy:   util.NullInt64FromPtr(uploadedBy),
	})
	if err != nil {
		_ = s.processor.DeleteMediaFiles(filename)
		return store.Media{}, fmt.Errorf("creating media record: %w", err)
	}

	if _, err := s.processor.CreateAllVariants(processed.FilePath, filename); err != nil {
		// The original is stored; variants are an optimization.
		slog.Warn("creating image variants failed", "error", err, "media_id", media.ID)
	}

	return media, nil
}

// Delete removes a media record and best-effort deletes its files. A file
// removal failure is logged, not returned: the record is already gone.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	media, err := s.queries.GetMediaByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return fmt.Errorf("getting media: %w", err)
	}

	deleted, err := s.queries.DeleteMedia(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting media record: %w", err)
	}
	if !deleted {
		return ErrMediaNotFound
	}

	if err := s.processor.DeleteMediaFiles(media.Filename); err != nil {
		slog.Warn("deleting media files failed", "error", err, "media_id", id)
	}

	return nil
}

// URL returns the public URL path for a media item, optionally for a
// named variant.
func (s *MediaService) URL(media store.Media, variant string) string {
	if variant == "" || variant == "original" {
		return "/uploads/originals/" + media.Filename
	}
	return "/uploads/" + variant + "/" + media.Filename
}

func mimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return model.MimeTypeJPEG
	case ".png":
		return model.MimeTypePNG
	case ".gif":
		return model.MimeTypeGIF
	case ".webp":
		return model.MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}

func extensionForMimeType(mimeType string) string {
	switch mimeType {
	case model.MimeTypeJPEG:
		return ".jpg"
	case model.MimeTypePNG:
		return ".png"
	case model.MimeTypeGIF:
		return ".gif"
	case model.MimeTypeWebP:
		return ".webp"
	default:
		return ".bin"
	}
}
