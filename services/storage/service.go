package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/tracing"
	"github.com/releasewatch/mailparser/services/aws_client"
)

// ObjectStorageService implements StorageService using S3Client
type ObjectStorageService struct {
	client aws_client.S3Client
}

func NewStorageService(client aws_client.S3Client) interfaces.StorageService {
	return &ObjectStorageService{
		client: client,
	}
}

// Download retrieves the raw bytes of one object
func (s *ObjectStorageService) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Download")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagObject(span, bucket, key)

	content, err := s.client.Download(ctx, bucket, key)
	if err != nil {
		err = errors.Wrapf(err, "download s3://%s/%s", bucket, key)
		tracing.TraceErr(span, err)
		return nil, err
	}

	return content, nil
}

// Upload stores data in object storage
func (s *ObjectStorageService) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Upload")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagObject(span, bucket, key)

	uploadInput := s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if err := s.client.Upload(ctx, uploadInput); err != nil {
		err = errors.Wrapf(err, "upload s3://%s/%s", bucket, key)
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}
