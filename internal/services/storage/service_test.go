package storage

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpload_Validation(t *testing.T) {
	s := &service{bucketName: "rishta-media", endpoint: "https://oss.example.net"}

	t.Run("missing file", func(t *testing.T) {
		_, err := s.Upload(CategoryIDDocuments, 1, nil)
		assert.ErrorIs(t, err, ErrMissingFile)
	})

	t.Run("oversized file", func(t *testing.T) {
		fh := &multipart.FileHeader{Filename: "id.jpg", Size: maxUploadSize + 1}
		_, err := s.Upload(CategoryIDDocuments, 1, fh)
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("disallowed extension", func(t *testing.T) {
		fh := &multipart.FileHeader{Filename: "malware.exe", Size: 100}
		_, err := s.Upload(CategoryIDDocuments, 1, fh)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("extension check is case insensitive", func(t *testing.T) {
		fh := &multipart.FileHeader{Filename: "scan.PDF", Size: 100}
		_, err := s.Upload(CategoryIDDocuments, 1, fh)
		assert.NotErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{
			name:     "https endpoint",
			endpoint: "https://oss-me-east-1.aliyuncs.com",
			want:     "https://rishta-media.oss-me-east-1.aliyuncs.com/id-documents/1/abc.jpg",
		},
		{
			name:     "bare endpoint",
			endpoint: "oss-me-east-1.aliyuncs.com",
			want:     "https://rishta-media.oss-me-east-1.aliyuncs.com/id-documents/1/abc.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &service{bucketName: "rishta-media", endpoint: tt.endpoint}
			assert.Equal(t, tt.want, s.PublicURL("id-documents/1/abc.jpg"))
		})
	}
}
