package service

import (
	"context"

	"go.uber.org/zap"

	"socialdl/internal/domain"
)

// StubDownloader stands in for a real media downloader and returns fixed content
type StubDownloader struct {
	logger *zap.Logger
}

// NewStubDownloader creates a new stub downloader
func NewStubDownloader(logger *zap.Logger) *StubDownloader {
	return &StubDownloader{logger: logger}
}

// Download returns placeholder video content for any URL
func (d *StubDownloader) Download(ctx context.Context, url string) (*domain.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.logger.Info("Download requested", zap.String("url", url))

	return &domain.Content{
		Kind:    domain.ContentVideo,
		Source:  "path_or_url_to_content",
		Caption: "Downloaded content",
	}, nil
}

// StubRecognizer stands in for a real song recognizer and returns a fixed song
type StubRecognizer struct {
	logger *zap.Logger
}

// NewStubRecognizer creates a new stub recognizer
func NewStubRecognizer(logger *zap.Logger) *StubRecognizer {
	return &StubRecognizer{logger: logger}
}

// Recognize returns a placeholder song for any audio file
func (r *StubRecognizer) Recognize(ctx context.Context, filePath string) (*domain.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Info("Recognition requested", zap.String("file", filePath))

	return &domain.Song{
		Title:  "Song Title",
		Artist: "Artist Name",
		Lyrics: "Lyrics not available",
	}, nil
}
