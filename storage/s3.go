package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

type S3Config struct {
	Bucket string
	// Endpoint overrides the AWS endpoint (MinIO, R2). When empty and
	// AccountID is set, the Cloudflare R2 endpoint for that account is used.
	Endpoint    string
	AccountID   string
	Region      string
	AccessKeyID string
	SecretKey   string
	// PublicURL is the base the stored references are built on.
	PublicURL string
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps menu files in an S3-compatible bucket.
type S3Store struct {
	client     s3API
	bucket     string
	publicBase string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" && cfg.AccountID != "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.PublicURL
	if publicBase == "" && endpoint != "" {
		publicBase = strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
	}
	return newS3Store(client, cfg.Bucket, publicBase), nil
}

func newS3Store(client s3API, bucket, publicBase string) *S3Store {
	return &S3Store{client: client, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}
}

// Save uploads r and returns the object's public URL, or its bare key when
// no public base is known.
func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	key := objectKey(name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.refFor(key), nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	key, err := s.keyFor(ref)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) refFor(key string) string {
	if s.publicBase == "" {
		return key
	}
	dir, file, _ := strings.Cut(key, "/")
	return s.publicBase + "/" + dir + "/" + url.PathEscape(file)
}

func (s *S3Store) keyFor(ref string) (string, error) {
	raw := ref
	if s.publicBase != "" {
		raw = strings.TrimPrefix(ref, s.publicBase+"/")
	}
	key, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid file reference %q: %w", ref, err)
	}
	if !strings.HasPrefix(key, menusDir+"/") {
		return "", fmt.Errorf("file reference %q is outside %s/", ref, menusDir)
	}
	return key, nil
}
