package server

import (
	"context"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/interfaces"
	mperrors "github.com/releasewatch/mailparser/internal/errors"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/tracing"
)

// LambdaHandler adapts object-created notifications to the email processor.
// Returning an error makes the invocation eligible for redelivery.
type LambdaHandler struct {
	processor interfaces.EmailProcessor
	logger    logger.Logger
}

func NewLambdaHandler(processor interfaces.EmailProcessor, logger logger.Logger) *LambdaHandler {
	return &LambdaHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *LambdaHandler) Handle(ctx context.Context, event events.S3Event) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LambdaHandler.Handle")
	defer span.Finish()
	tracing.SetDefaultLambdaSpanTags(ctx, span)

	defer func() {
		if r := recover(); r != nil {
			tracing.RecoverAndLogToJaeger(h.logger, r)
			err = errors.Errorf("panic while processing event: %v", r)
			tracing.TraceErr(span, err)
		}
	}()

	if len(event.Records) == 0 {
		tracing.TraceErr(span, mperrors.ErrEmptyEvent)
		return mperrors.ErrEmptyEvent
	}
	if len(event.Records) > 1 {
		h.logger.Warnf("Event carries %d records, only the first is processed", len(event.Records))
	}

	record := event.Records[0]
	bucket := record.S3.Bucket.Name
	key := ObjectKey(record.S3.Object)

	outcome, err := h.processor.Process(ctx, bucket, key)
	if err != nil {
		h.logger.Errorf("Failed to process s3://%s/%s: %v", bucket, key, err)
		tracing.TraceErr(span, err)
		return err
	}

	h.logger.Infof("Processed s3://%s/%s: %s", bucket, key, outcome)
	return nil
}

// ObjectKey returns the decoded object key. Keys in S3 notifications are URL-encoded.
func ObjectKey(object events.S3Object) string {
	if object.URLDecodedKey != "" {
		return object.URLDecodedKey
	}
	decoded, err := url.QueryUnescape(object.Key)
	if err != nil {
		return object.Key
	}
	return decoded
}
