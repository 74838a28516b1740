// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/config"
	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

const (
	// LocalUploadsPath is the URL prefix the router serves UploadDir under.
	LocalUploadsPath = "/uploads"

	maxTourismImageSize = 5 * 1024 * 1024
)

type StorageService struct {
	s3Client     s3iface.S3API
	config       config.AWSConfig
	localBaseURL string
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type UploadOptions struct {
	Folder            string
	MaxSize           int64 // in bytes
	AllowedExtensions []string
	AllowedMimeTypes  []string
	IsPublic          bool
}

// TourismImageOptions accepts jpg, png and webp images up to 5 MB.
func TourismImageOptions() UploadOptions {
	return UploadOptions{
		Folder:            "tourism",
		MaxSize:           maxTourismImageSize,
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
		AllowedMimeTypes:  []string{"image/jpeg", "image/png", "image/webp"},
		IsPublic:          true,
	}
}

// NewStorageService uploads to S3 when credentials are configured and to
// cfg.UploadDir otherwise. localBaseURL prefixes local file URLs.
func NewStorageService(cfg config.AWSConfig, localBaseURL string) (*StorageService, error) {
	svc := &StorageService{
		config:       cfg,
		localBaseURL: strings.TrimRight(localBaseURL, "/"),
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		logrus.WithField("dir", cfg.UploadDir).Info("S3 not configured, storing uploads locally")
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

// WithS3Client replaces the S3 client, switching the service to S3 uploads.
func (s *StorageService) WithS3Client(client s3iface.S3API) *StorageService {
	s.s3Client = client
	return s
}

// UsesS3 reports whether uploads go to S3 rather than the local directory.
func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

// UploadFile validates and stores the content of r. Keys are derived from
// the content hash, so re-uploading the same file yields the same key.
func (s *StorageService) UploadFile(ctx context.Context, filename string, r io.Reader, options UploadOptions) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(options.AllowedExtensions) > 0 && !contains(options.AllowedExtensions, ext) {
		return nil, apperrors.Validation(fmt.Sprintf("file type %s is not allowed", ext)).
			WithKey(i18n.KeyFileInvalidType)
	}

	reader := r
	if options.MaxSize > 0 {
		reader = io.LimitReader(r, options.MaxSize+1)
	}
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.Internal("failed to read upload", err).WithKey(i18n.KeyFileUploadFailed)
	}
	if len(fileBytes) == 0 {
		return nil, apperrors.Validation("file is empty").WithKey(i18n.KeyFileMissing)
	}
	if options.MaxSize > 0 && int64(len(fileBytes)) > options.MaxSize {
		return nil, apperrors.Validation(fmt.Sprintf("file exceeds maximum allowed size %d bytes", options.MaxSize)).
			WithKey(i18n.KeyFileTooLarge)
	}

	detected := mimetype.Detect(fileBytes)
	if len(options.AllowedMimeTypes) > 0 && !mimeAllowed(detected, options.AllowedMimeTypes) {
		return nil, apperrors.Validation(fmt.Sprintf("content type %s is not allowed", detected.String())).
			WithKey(i18n.KeyFileInvalidType)
	}

	key := s.generateKey(fileBytes, detected.Extension(), options.Folder)
	contentType := detected.String()

	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, key, contentType, options.IsPublic)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}
	if isPublic {
		params.ACL = aws.String(s3.ObjectCannedACLPublicRead)
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, apperrors.Internal("failed to upload to S3", err).WithKey(i18n.KeyFileUploadFailed)
	}

	logrus.WithFields(logrus.Fields{
		"bucket": s.config.S3Bucket,
		"key":    key,
		"size":   len(fileBytes),
	}).Info("File uploaded to S3")

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.config.UploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.Internal("failed to create upload directory", err).WithKey(i18n.KeyFileUploadFailed)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, apperrors.Internal("failed to write upload", err).WithKey(i18n.KeyFileUploadFailed)
	}

	return &UploadResult{
		URL:      s.getLocalURL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) generateKey(content []byte, ext, folder string) string {
	name := utils.HashBytes(content) + ext
	if folder != "" {
		return folder + "/" + name
	}
	return name
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.PublicBaseURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.S3Bucket, s.config.Region, key)
}

func (s *StorageService) getLocalURL(key string) string {
	base := s.localBaseURL
	if s.config.PublicBaseURL != "" {
		base = strings.TrimRight(s.config.PublicBaseURL, "/")
	}
	return base + LocalUploadsPath + "/" + key
}

func mimeAllowed(detected *mimetype.MIME, allowed []string) bool {
	for _, m := range allowed {
		if detected.Is(m) {
			return true
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
