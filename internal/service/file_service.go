package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

// imageExtensions maps sniffed content types to the stored extension.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ImageFolders lists the folders an image may be uploaded into.
var ImageFolders = map[string]bool{
	"products":   true,
	"categories": true,
	"banners":    true,
	"offers":     true,
}

// DefaultImageFolder is used when an upload names no folder.
const DefaultImageFolder = "products"

// ImageUploadInput is the DTO for image uploads.
type ImageUploadInput struct {
	Folder   string
	Filename string
	Size     int64
	File     io.ReadSeeker
}

// UploadedImage is the stored location of an uploaded image. ExpiresIn is set
// when URL is presigned.
type UploadedImage struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// FileUploadConfig controls where images are stored and how they are linked.
type FileUploadConfig struct {
	Enabled       bool
	Bucket        string
	MaxBytes      int64
	PublicBaseURL string
	PresignExpiry int64
}

// FileService stores admin-uploaded images for the catalog and storefront.
type FileService interface {
	UploadImage(ctx context.Context, input ImageUploadInput) (*UploadedImage, error)
}

type fileService struct {
	storage port.ObjectStorage
	cfg     FileUploadConfig
	log     zerolog.Logger
}

// NewFileService creates a new FileService implementation. storage may be nil
// when uploads are disabled.
func NewFileService(storage port.ObjectStorage, cfg FileUploadConfig, log zerolog.Logger) FileService {
	return &fileService{
		storage: storage,
		cfg:     cfg,
		log:     log.With().Str("component", "uploads").Logger(),
	}
}

func (s *fileService) UploadImage(ctx context.Context, input ImageUploadInput) (*UploadedImage, error) {
	if !s.cfg.Enabled || s.storage == nil {
		return nil, domain.ErrUploadsDisabled
	}

	folder := strings.ToLower(strings.TrimSpace(input.Folder))
	if folder == "" {
		folder = DefaultImageFolder
	}
	if !ImageFolders[folder] {
		return nil, fmt.Errorf("folder %q: %w", input.Folder, domain.ErrInvalidArgument)
	}
	if s.cfg.MaxBytes > 0 && input.Size > s.cfg.MaxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// The declared filename and content type are not trusted; sniff the bytes.
	buf := make([]byte, 512)
	n, err := io.ReadFull(input.File, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	contentType := http.DetectContentType(buf[:n])
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%s: %w", contentType, domain.ErrUnsupportedFile)
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	key := fmt.Sprintf("images/%s/%s.%s", folder, uuid.New(), ext)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
	}); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("image upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	s.log.Info().Str("key", key).Str("original", input.Filename).Int64("size", input.Size).Msg("image uploaded")

	out := &UploadedImage{Key: key, ContentType: contentType, Size: input.Size}
	if s.cfg.PublicBaseURL != "" {
		out.URL = s.cfg.PublicBaseURL + "/" + key
		return out, nil
	}
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning %s: %w", key, err)
	}
	out.URL = url
	out.ExpiresIn = s.cfg.PresignExpiry
	return out, nil
}
