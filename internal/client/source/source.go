// Package source loads raw export text from a local path or an S3 object
// ("s3://bucket/key").
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxSize caps the size of one export.
var MaxSize int64 = 64 << 20

var (
	ErrTooLarge  = errors.New("export too large")
	ErrNotText   = errors.New("export is not UTF-8 text")
	ErrNoS3      = errors.New("s3 source not configured")
	ErrBadObject = errors.New("malformed s3 location")
)

// GetObjectAPI is the part of *s3.Client the reader needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config selects the bucket endpoint and credentials. Empty keys fall
// back to the default AWS credential chain.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// NewS3Client builds an S3 client for cfg. A custom endpoint switches to
// path-style addressing, as MinIO and other S3 compatibles expect.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Reader reads exports. The S3 client is optional.
type Reader struct {
	s3 GetObjectAPI
}

func NewReader(s3 GetObjectAPI) *Reader {
	return &Reader{s3: s3}
}

// ParseS3 splits "s3://bucket/key".
func ParseS3(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// Read returns the text stored at location.
func (r *Reader) Read(ctx context.Context, location string) (string, error) {
	if strings.HasPrefix(location, "s3://") {
		return r.readS3(ctx, location)
	}

	f, err := os.Open(location)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", location, err)
	}
	defer f.Close()
	return readAll(f)
}

func (r *Reader) readS3(ctx context.Context, location string) (string, error) {
	if r.s3 == nil {
		return "", ErrNoS3
	}
	bucket, key, ok := ParseS3(location)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrBadObject, location)
	}

	out, err := r.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("get %s: %w", location, err)
	}
	defer out.Body.Close()
	return readAll(out.Body)
}

func readAll(rd io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(rd, MaxSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(b)) > MaxSize {
		return "", ErrTooLarge
	}
	if !utf8.Valid(b) {
		return "", ErrNotText
	}
	return string(b), nil
}
