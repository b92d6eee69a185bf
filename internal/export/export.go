// Package export writes rendered demo snapshots to local files or S3.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/quasar-dev/quasar/internal/config"
	"github.com/quasar-dev/quasar/internal/errors"
)

// Store receives snapshots.
type Store interface {
	// Put stores markup under name and returns where it was written.
	Put(ctx context.Context, name string, markup []byte) (string, error)
}

// FileStore writes snapshots into a directory.
type FileStore struct {
	Dir string
}

// Put writes markup to Dir/name.
func (f FileStore) Put(ctx context.Context, name string, markup []byte) (string, error) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", errors.New("Q081").Wrap(err)
	}
	p := filepath.Join(f.Dir, name)
	if err := os.WriteFile(p, markup, 0o644); err != nil {
		return "", errors.New("Q081").WithDetail("Could not write " + p).Wrap(err)
	}
	return p, nil
}

// putObjectAPI is the part of *s3.Client the store uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads snapshots to an S3 bucket.
type S3Store struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewS3Store creates a store over client.
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads markup as prefix+name.
func (s *S3Store) Put(ctx context.Context, name string, markup []byte) (string, error) {
	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(markup),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"export-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("Q081").
			WithDetail(fmt.Sprintf("Upload to s3://%s/%s failed", s.bucket, key)).
			Wrap(err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// NewS3Client builds an S3 client from the export settings. Credentials
// come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(cfg config.ExportConfig, getenv func(string) string) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.PathStyle,
		Credentials:  envCredentials(getenv),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func envCredentials(getenv func(string) string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    getenv("AWS_SESSION_TOKEN"),
			Source:          "QuasarEnv",
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, errors.New("Q081").
				WithDetail("AWS credentials are not set").
				WithSuggestion("Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
		}
		return creds, nil
	})
}

// ForConfig returns an S3Store when a bucket is configured and a FileStore
// over dir otherwise.
func ForConfig(cfg config.ExportConfig, dir string, getenv func(string) string) Store {
	if cfg.Bucket == "" {
		return FileStore{Dir: dir}
	}
	return NewS3Store(NewS3Client(cfg, getenv), cfg.Bucket, cfg.Prefix)
}
