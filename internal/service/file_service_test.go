package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"amorlias/internal/domain"
	"amorlias/internal/port"
	"amorlias/internal/service"
	"amorlias/mocks"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func uploadConfig() service.FileUploadConfig {
	return service.FileUploadConfig{Enabled: true, Bucket: "amorlias-media", MaxBytes: 1 << 20, PresignExpiry: 900}
}

func imageInput(folder string, body []byte) service.ImageUploadInput {
	return service.ImageUploadInput{Folder: folder, Filename: "kurti.png", Size: int64(len(body)), File: bytes.NewReader(body)}
}

func TestFileService_UploadImage_Presigned(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(storage, uploadConfig(), nopLog)

	var key string
	storage.On("Upload", anyCtx, mock.MatchedBy(func(in port.UploadInput) bool {
		key = in.Key
		return in.Bucket == "amorlias-media" && in.ContentType == "image/png" &&
			strings.HasPrefix(in.Key, "images/banners/") && strings.HasSuffix(in.Key, ".png")
	})).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", anyCtx, "amorlias-media", mock.Anything, int64(900)).Return("https://signed", nil)

	img, err := svc.UploadImage(context.Background(), imageInput("Banners", pngBytes))

	require.NoError(t, err)
	assert.Equal(t, key, img.Key)
	assert.Equal(t, "https://signed", img.URL)
	assert.Equal(t, int64(900), img.ExpiresIn)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestFileService_UploadImage_PublicURL(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := uploadConfig()
	cfg.PublicBaseURL = "https://cdn.amorlias.in"
	svc := service.NewFileService(storage, cfg, nopLog)
	storage.On("Upload", anyCtx, mock.Anything).Return(&port.UploadOutput{}, nil)

	img, err := svc.UploadImage(context.Background(), imageInput("", pngBytes))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.Key, "images/products/"))
	assert.Equal(t, "https://cdn.amorlias.in/"+img.Key, img.URL)
	assert.Zero(t, img.ExpiresIn)
	storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_UploadImage_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		cfg   func(*service.FileUploadConfig)
		input service.ImageUploadInput
		want  error
	}{
		{"disabled", func(c *service.FileUploadConfig) { c.Enabled = false }, imageInput("", pngBytes), domain.ErrUploadsDisabled},
		{"unknown folder", nil, imageInput("invoices", pngBytes), domain.ErrInvalidArgument},
		{"not an image", nil, imageInput("", []byte("%PDF-1.7 hello")), domain.ErrUnsupportedFile},
		{"too large", func(c *service.FileUploadConfig) { c.MaxBytes = 8 }, imageInput("", pngBytes), domain.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := new(mocks.MockObjectStorage)
			cfg := uploadConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			svc := service.NewFileService(storage, cfg, nopLog)

			_, err := svc.UploadImage(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.want)
			storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		})
	}
}

func TestFileService_UploadImage_StorageFailure(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(storage, uploadConfig(), nopLog)
	storage.On("Upload", anyCtx, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.UploadImage(context.Background(), imageInput("", pngBytes))

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}
