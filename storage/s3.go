package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const pdfContentType = "application/pdf"

type S3Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Sink uploads the document with the multipart-aware upload manager.
type S3Sink struct {
	uploader *manager.Uploader
	bucket   string
	key      string
}

func NewS3Sink(ctx context.Context, bucket, key string, opts S3Options) (*S3Sink, error) {
	var loadOpts []func(*awscfg.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awscfg.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	cli := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Sink{
		uploader: manager.NewUploader(cli),
		bucket:   bucket,
		key:      key,
	}, nil
}

func (s *S3Sink) Save(ctx context.Context, data []byte) (string, error) {
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(pdfContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	log.Info().Str("bucket", s.bucket).Str("key", s.key).Str("location", out.Location).Int("bytes", len(data)).Msg("document uploaded")
	return Target{Bucket: s.bucket, Key: s.key}.String(), nil
}

// NewSink picks the sink for a parsed target.
func NewSink(ctx context.Context, target Target, opts S3Options) (Sink, error) {
	if !target.IsS3() {
		return NewLocalSink(target.Path), nil
	}
	sink, err := NewS3Sink(ctx, target.Bucket, target.Key, opts)
	if err != nil {
		return nil, err
	}
	return sink, nil
}
