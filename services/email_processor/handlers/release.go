package handlers

import (
	"context"
	"path"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/dto"
	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/enum"
	mperrors "github.com/releasewatch/mailparser/internal/errors"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/models"
	"github.com/releasewatch/mailparser/internal/tracing"
)

const rawMessageContentType = "message/rfc822"

type QuarantineConfig struct {
	Bucket string
	Prefix string
}

// ReleaseHandler stores structured release notifications
type ReleaseHandler struct {
	registry          interfaces.ExtractorRegistry
	releaseRepository interfaces.ReleaseRepository
	storage           interfaces.StorageService
	quarantine        QuarantineConfig
	logger            logger.Logger
}

func NewReleaseHandler(
	registry interfaces.ExtractorRegistry,
	releaseRepository interfaces.ReleaseRepository,
	storage interfaces.StorageService,
	quarantine QuarantineConfig,
	logger logger.Logger,
) *ReleaseHandler {
	return &ReleaseHandler{
		registry:          registry,
		releaseRepository: releaseRepository,
		storage:           storage,
		quarantine:        quarantine,
		logger:            logger,
	}
}

// Handle extracts and persists the release. A structural mismatch is logged and
// acknowledged: the template will not change on redelivery.
func (h *ReleaseHandler) Handle(ctx context.Context, source dto.ObjectLocation, raw []byte, envelope *models.MailEnvelope) (enum.PipelineOutcome, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ReleaseHandler.Handle")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagObject(span, source.Bucket, source.Key)

	extractor, ok := h.registry.Lookup(envelope.From)
	if !ok {
		err := errors.Wrap(mperrors.ErrNoExtractor, envelope.From)
		tracing.TraceErr(span, err)
		return "", err
	}

	record, err := h.extract(ctx, extractor, envelope)
	if err != nil {
		if mperrors.IsStructuralMismatch(err) {
			h.logger.Warnf("Skipping %s from %s: %v", source, envelope.From, err)
			span.LogKV("mismatch", err.Error())
			h.quarantineRaw(ctx, source, raw)
			return enum.OutcomeSkipped, nil
		}
		tracing.TraceErr(span, err)
		return "", err
	}

	if err := h.releaseRepository.Upsert(ctx, record); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	h.logger.Infof("Stored release %q by label %q for %s", record.Title, record.Label, record.Recipient)
	return enum.OutcomeStored, nil
}

func (h *ReleaseHandler) extract(ctx context.Context, extractor interfaces.ReleaseExtractor, envelope *models.MailEnvelope) (*models.ReleaseRecord, error) {
	if !envelope.HasHTMLBody() {
		return nil, mperrors.StructuralMismatch("no html body")
	}
	return extractor.Extract(ctx, *envelope.HTMLBody, envelope)
}

// quarantineRaw keeps a copy of the raw message for manual inspection. Failures
// are only logged so the message is still acknowledged.
func (h *ReleaseHandler) quarantineRaw(ctx context.Context, source dto.ObjectLocation, raw []byte) {
	if h.quarantine.Bucket == "" || h.storage == nil {
		return
	}

	key := path.Join(h.quarantine.Prefix, source.Bucket, source.Key)
	if err := h.storage.Upload(ctx, h.quarantine.Bucket, key, raw, rawMessageContentType); err != nil {
		h.logger.Errorf("Failed to quarantine %s: %v", source, err)
		return
	}
	h.logger.Infof("Quarantined %s as s3://%s/%s", source, h.quarantine.Bucket, key)
}
