package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/dto"
	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/enum"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/models"
	"github.com/releasewatch/mailparser/internal/tracing"
	"github.com/releasewatch/mailparser/services/events"
)

// ForwardHandler publishes a digest of any mail that is not a structured release
type ForwardHandler struct {
	digestBuilder interfaces.DigestBuilder
	publisher     interfaces.NotificationPublisher
	logger        logger.Logger
}

func NewForwardHandler(
	digestBuilder interfaces.DigestBuilder,
	publisher interfaces.NotificationPublisher,
	logger logger.Logger,
) *ForwardHandler {
	return &ForwardHandler{
		digestBuilder: digestBuilder,
		publisher:     publisher,
		logger:        logger,
	}
}

func (h *ForwardHandler) Handle(ctx context.Context, source dto.ObjectLocation, envelope *models.MailEnvelope) (enum.PipelineOutcome, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ForwardHandler.Handle")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagObject(span, source.Bucket, source.Key)

	digest, err := h.digestBuilder.Build(envelope)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	message, err := FormatForwardMessage(source, digest)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	err = h.publisher.Publish(ctx, message, map[string]string{
		events.AttributeBucket: source.Bucket,
		events.AttributeKey:    source.Key,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	h.logger.Infof("Forwarded %s from %s", source, envelope.From)
	return enum.OutcomeForwarded, nil
}

// FormatForwardMessage renders the object location on the first line and the
// JSON digest on the second.
func FormatForwardMessage(source dto.ObjectLocation, digest *models.ForwardDigest) (string, error) {
	payload, err := json.Marshal(digest)
	if err != nil {
		return "", errors.Wrap(err, "marshal forward digest")
	}
	return fmt.Sprintf("%s\n%s", source, payload), nil
}
