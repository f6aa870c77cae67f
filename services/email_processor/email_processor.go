package email_processor

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/releasewatch/mailparser/dto"
	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/enum"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/tracing"
	"github.com/releasewatch/mailparser/services/email_processor/handlers"
)

type Processor struct {
	storage        interfaces.StorageService
	parser         interfaces.EnvelopeParser
	classifier     interfaces.SenderClassifier
	releaseHandler *handlers.ReleaseHandler
	forwardHandler *handlers.ForwardHandler
	logger         logger.Logger
}

func NewProcessor(
	storage interfaces.StorageService,
	parser interfaces.EnvelopeParser,
	classifier interfaces.SenderClassifier,
	releaseHandler *handlers.ReleaseHandler,
	forwardHandler *handlers.ForwardHandler,
	logger logger.Logger,
) *Processor {
	return &Processor{
		storage:        storage,
		parser:         parser,
		classifier:     classifier,
		releaseHandler: releaseHandler,
		forwardHandler: forwardHandler,
		logger:         logger,
	}
}

// Process runs one stored message through the pipeline. A nil error means the
// message is acknowledged, including structured mail whose HTML did not match.
func (p *Processor) Process(ctx context.Context, bucket, key string) (enum.PipelineOutcome, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Processor.Process")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagObject(span, bucket, key)

	source := dto.ObjectLocation{Bucket: bucket, Key: key}

	raw, err := p.storage.Download(ctx, bucket, key)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	envelope, err := p.parser.Parse(ctx, raw)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	tracing.TagSender(span, envelope.From)

	decision := p.classifier.Classify(envelope)
	span.SetTag("routing", decision.String())
	p.logger.Debugf("Routing %s from %s: %s", source, envelope.From, decision)

	var outcome enum.PipelineOutcome
	switch decision {
	case enum.RoutingStructuredRelease:
		outcome, err = p.releaseHandler.Handle(ctx, source, raw, envelope)
	default:
		outcome, err = p.forwardHandler.Handle(ctx, source, envelope)
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	span.SetTag("outcome", outcome.String())
	return outcome, nil
}
