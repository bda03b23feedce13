package output

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 10 * time.Second

// S3Options configures an S3Uploader
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // Empty uses the AWS endpoint for Region
	Prefix    string // Key prefix, e.g. "renders"
	AccessKey string
	SecretKey string
}

// S3Uploader publishes rendered PNGs to an S3-compatible bucket
type S3Uploader struct {
	client s3iface.S3API
	opts   S3Options
	logger core.Logger
}

// NewS3Uploader creates an uploader backed by a new AWS session
func NewS3Uploader(opts S3Options, logger core.Logger) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket must not be empty")
	}

	s3Config := &aws.Config{
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.AccessKey != "" {
		s3Config.Credentials = credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, "")
	}
	if opts.Endpoint != "" {
		s3Config.Endpoint = aws.String(opts.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), opts, logger), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client
func NewS3UploaderWithClient(client s3iface.S3API, opts S3Options, logger core.Logger) *S3Uploader {
	return &S3Uploader{client: client, opts: opts, logger: logger}
}

// ObjectKey returns the bucket key for a render file name
func (u *S3Uploader) ObjectKey(sceneName, fileName string) string {
	return path.Join(u.opts.Prefix, sceneName, fileName)
}

// putObjectInput builds the request for uploading PNG data under key
func (u *S3Uploader) putObjectInput(data []byte, key string) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket:        aws.String(u.opts.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	}
}

// UploadPNG stores PNG data under key
func (u *S3Uploader) UploadPNG(ctx context.Context, data []byte, key string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	if _, err := u.client.PutObjectWithContext(ctx, u.putObjectInput(data, key)); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if u.logger != nil {
		u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, u.opts.Bucket, len(data))
	}
	return nil
}
