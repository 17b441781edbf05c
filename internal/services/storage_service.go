// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/threadforge/pod-backend/internal/config"
)

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
	IsPublic     bool
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// ArtworkUploadOptions builds the upload constraints for design files
// from configuration. Artwork stays private; the storefront serves it
// through presigned URLs.
func (s *StorageService) ArtworkUploadOptions() UploadOptions {
	allowed := make([]string, 0, len(s.config.Upload.AllowedFormats))
	for _, format := range s.config.Upload.AllowedFormats {
		allowed = append(allowed, "."+strings.TrimPrefix(strings.TrimSpace(format), "."))
	}

	return UploadOptions{
		Folder:       "artwork",
		MaxSize:      int64(s.config.Upload.MaxSizeMB) * 1024 * 1024,
		AllowedTypes: allowed,
		IsPublic:     false,
	}
}

func (s *StorageService) UploadArtwork(data []byte, originalName, contentType string) (*UploadResult, error) {
	options := s.ArtworkUploadOptions()

	// Validate file size
	if options.MaxSize > 0 && int64(len(data)) > options.MaxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", len(data), options.MaxSize)
	}

	// Validate file type
	fileExt := strings.ToLower(filepath.Ext(originalName))
	allowed := false
	for _, allowedType := range options.AllowedTypes {
		if fileExt == allowedType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("file type %s is not allowed", fileExt)
	}

	if err := s.validateSignature(data, fileExt); err != nil {
		return nil, err
	}

	// Generate unique filename
	key := s.generateFileName(originalName, options.Folder)

	// Upload to S3 or local storage
	if s.s3Client != nil {
		return s.uploadToS3(data, key, contentType, options.IsPublic)
	}

	return s.uploadToLocal(data, key, contentType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	// Prepare S3 upload parameters
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if isPublic {
		params.ACL = aws.String("public-read")
	}

	// Upload to S3
	_, err := s.s3Client.PutObject(params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	// Generate URL
	url := s.getS3URL(key)

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, filename, contentType string) (*UploadResult, error) {
	// For local development, we'll simulate file storage
	// In a real implementation, you'd save to local filesystem

	url := fmt.Sprintf("http://localhost:8080/uploads/%s", filename)

	return &UploadResult{
		URL:      url,
		Key:      filename,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(key string) error {
	if s.s3Client == nil {
		// Local development - just log
		fmt.Printf("File would be deleted: %s\n", key)
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func (s *StorageService) generateFileName(originalName, folder string) string {
	// Generate UUID for uniqueness
	id := uuid.New()

	// Get file extension
	ext := filepath.Ext(originalName)

	// Create filename with timestamp and UUID
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, id.String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}

	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

// validateSignature rejects files whose content does not match their
// claimed extension. Vector formats get a lightweight text probe.
func (s *StorageService) validateSignature(data []byte, fileExt string) error {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}

	valid := false
	switch fileExt {
	case ".jpg", ".jpeg":
		valid = len(head) >= 3 && head[0] == 0xFF && head[1] == 0xD8 && head[2] == 0xFF
	case ".png":
		valid = len(head) >= 8 && head[0] == 0x89 && head[1] == 0x50 && head[2] == 0x4E && head[3] == 0x47
	case ".gif":
		valid = len(head) >= 6 && (string(head[0:6]) == "GIF87a" || string(head[0:6]) == "GIF89a")
	case ".webp":
		valid = len(head) >= 12 && string(head[0:4]) == "RIFF" && string(head[8:12]) == "WEBP"
	case ".pdf":
		valid = len(head) >= 4 && string(head[0:4]) == "%PDF"
	case ".svg":
		valid = bytes.Contains(head, []byte("<svg")) || bytes.Contains(head, []byte("<?xml"))
	default:
		return fmt.Errorf("unsupported artwork format %s", fileExt)
	}

	if !valid {
		return fmt.Errorf("file content does not match %s format", fileExt)
	}

	return nil
}
