package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"studio/config"
	"studio/infras/otel"
	"studio/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

const otelAttrBucket = "bucket"

type s3Store struct {
	client *s3.Client
	bucket string
	otel   otel.Otel
}

// NewS3 talks to AWS S3 or any S3 compatible endpoint (MinIO, R2) when Endpoint is set.
func NewS3(cfg *config.Config, ot otel.Otel) Store {
	s3Cfg := cfg.External.S3

	options := []func(*awsConfig.LoadOptions) error{}
	if s3Cfg.AccessKey != "" {
		options = append(options, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3Cfg.AccessKey, s3Cfg.SecretKey, ""),
		))
	}

	if s3Cfg.Region != "" {
		options = append(options, awsConfig.WithRegion(s3Cfg.Region))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(), options...)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().Str("bucket", s3Cfg.Bucket).Msg("S3 storage initialized")

	return &s3Store{
		client: client,
		bucket: s3Cfg.Bucket,
		otel:   ot,
	}
}

func (s *s3Store) Save(ctx context.Context, key, contentType string, body io.Reader) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".s3.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{otelAttrKey: key, otelAttrBucket: s.bucket})

	key, err = CleanKey(key)
	if err != nil {
		return err
	}

	if contentType == "" {
		contentType = ContentType(key)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload file to S3")

		return fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return nil
}

func (s *s3Store) Open(ctx context.Context, key string) (obj *Object, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".s3.Open")
	defer scope.End()

	scope.SetAttributes(map[string]any{otelAttrKey: key, otelAttrBucket: s.bucket})

	key, err = CleanKey(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrNotFound
		}

		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = ContentType(key)
	}

	var modTime time.Time
	if out.LastModified != nil {
		modTime = *out.LastModified
	}

	return &Object{
		Body:        out.Body,
		Size:        aws.ToInt64(out.ContentLength),
		ModTime:     modTime,
		ContentType: contentType,
	}, nil
}

// Delete succeeds for missing keys, which matches S3 DeleteObject semantics.
func (s *s3Store) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".s3.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{otelAttrKey: key, otelAttrBucket: s.bucket})

	key, err = CleanKey(key)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}
