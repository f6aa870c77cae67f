package email_processor

import (
	"context"

	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/dto"
	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/enum"
	mperrors "github.com/releasewatch/mailparser/internal/errors"
)

// Inspector runs parsing, classification and extraction without touching any
// collaborator. Used to look at quarantined or local messages.
type Inspector struct {
	parser        interfaces.EnvelopeParser
	classifier    interfaces.SenderClassifier
	registry      interfaces.ExtractorRegistry
	digestBuilder interfaces.DigestBuilder
}

func NewInspector(
	parser interfaces.EnvelopeParser,
	classifier interfaces.SenderClassifier,
	registry interfaces.ExtractorRegistry,
	digestBuilder interfaces.DigestBuilder,
) *Inspector {
	return &Inspector{
		parser:        parser,
		classifier:    classifier,
		registry:      registry,
		digestBuilder: digestBuilder,
	}
}

func (i *Inspector) Inspect(ctx context.Context, raw []byte) (*dto.InspectionResult, error) {
	envelope, err := i.parser.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}

	result := &dto.InspectionResult{
		From:    envelope.From,
		To:      envelope.To,
		Subject: envelope.Subject,
		Routing: i.classifier.Classify(envelope),
	}

	if result.Routing != enum.RoutingStructuredRelease {
		result.Digest, err = i.digestBuilder.Build(envelope)
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	extractor, ok := i.registry.Lookup(envelope.From)
	if !ok {
		return nil, errors.Wrap(mperrors.ErrNoExtractor, envelope.From)
	}
	if !envelope.HasHTMLBody() {
		result.Mismatch = mperrors.StructuralMismatch("no html body").Error()
		return result, nil
	}

	result.Release, err = extractor.Extract(ctx, *envelope.HTMLBody, envelope)
	if mperrors.IsStructuralMismatch(err) {
		result.Mismatch = err.Error()
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
