// Package publish uploads rendered frames to S3-compatible storage.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/taigrr/sunray/pkg/log"
)

var logger = log.New("publish")

// ErrNoBucket is returned when an upload is attempted without a bucket.
var ErrNoBucket = errors.New("no bucket configured")

// DefaultTimeout bounds a single upload.
const DefaultTimeout = 30 * time.Second

// Config describes the target bucket. Empty credentials fall back to the
// SDK's default chain (environment, shared config, instance role).
type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Custom endpoint for S3-compatible stores
	Region    string
	Bucket    string
	ACL       string
	Timeout   time.Duration
}

// ConfigFromEnv reads S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT, S3_REGION,
// S3_BUCKET and S3_ACL.
func ConfigFromEnv() Config {
	return Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		ACL:       os.Getenv("S3_ACL"),
	}
}

// Uploader puts objects into one bucket.
type Uploader struct {
	client  s3iface.S3API
	bucket  string
	acl     string
	timeout time.Duration
}

// NewUploader creates an uploader with its own S3 session.
func NewUploader(cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	awsCfg := &aws.Config{}
	if cfg.Region != "" {
		awsCfg.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}

	u := NewUploaderWithClient(s3.New(sess), cfg.Bucket)
	u.acl = cfg.ACL
	if cfg.Timeout > 0 {
		u.timeout = cfg.Timeout
	}
	return u, nil
}

// NewUploaderWithClient wraps an existing client.
func NewUploaderWithClient(client s3iface.S3API, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket, timeout: DefaultTimeout}
}

// Upload stores data under key.
func (u *Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if u.bucket == "" {
		return ErrNoBucket
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if u.acl != "" {
		input.ACL = aws.String(u.acl)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	logger.Infof("uploaded s3://%s/%s (%d bytes)", u.bucket, key, size)
	return nil
}

// UploadFile stores the file at path under key. An empty key uses the
// file's base name. The content type follows the extension.
func (u *Uploader) UploadFile(ctx context.Context, path, key string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if key == "" {
		key = filepath.Base(path)
	}
	return u.Upload(ctx, key, data, ContentType(path))
}

// ContentType guesses the MIME type of path from its extension.
func ContentType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
