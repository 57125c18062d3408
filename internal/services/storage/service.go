// Package storage wraps the OSS bucket that holds user-submitted files:
// profile pictures, identity documents, selfies, and payment proofs. Keys
// are namespaced per category and owner and randomized with a UUID so a
// re-upload never clobbers a file an admin may still be reviewing.
package storage

import (
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"rishta/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// Upload categories, used as key prefixes.
const (
	CategoryProfilePictures = "profile-pictures"
	CategoryIDDocuments     = "id-documents"
	CategorySelfies         = "selfies"
	CategoryPaymentProofs   = "payment-proofs"
)

const maxUploadSize = 5 * 1024 * 1024 // 5 MiB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

type Service interface {
	// Upload stores the file under category/ownerID and returns its object
	// key.
	Upload(category string, ownerID uint, fh *multipart.FileHeader) (string, error)

	// PublicURL resolves an object key to its public URL.
	PublicURL(key string) string
}

type service struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
}

// NewServiceFromEnv connects to the OSS bucket configured via
// OSS_ENDPOINT, OSS_ACCESS_KEY, OSS_ACCESS_SECRET and OSS_BUCKET.
func NewServiceFromEnv() (Service, error) {
	endpoint := config.GetEnv("OSS_ENDPOINT", "")
	accessKey := config.GetEnv("OSS_ACCESS_KEY", "")
	accessSecret := config.GetEnv("OSS_ACCESS_SECRET", "")
	bucketName := config.GetEnv("OSS_BUCKET", "")
	if endpoint == "" || accessKey == "" || accessSecret == "" || bucketName == "" {
		return nil, fmt.Errorf("OSS configuration incomplete")
	}

	client, err := oss.New(endpoint, accessKey, accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open OSS bucket: %w", err)
	}

	return &service{
		bucket:     bucket,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

func (s *service) Upload(category string, ownerID uint, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrMissingFile
	}
	if fh.Size > maxUploadSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	key := path.Join(category, fmt.Sprintf("%d", ownerID), uuid.NewString()+ext)
	if err := s.bucket.PutObject(key, file); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return key, nil
}

func (s *service) PublicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, host, key)
}
