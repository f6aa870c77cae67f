package classifier

import (
	"github.com/releasewatch/mailparser/interfaces"
	"github.com/releasewatch/mailparser/internal/enum"
	"github.com/releasewatch/mailparser/internal/models"
)

type senderClassifier struct {
	registry interfaces.ExtractorRegistry
}

// NewSenderClassifier routes a message to the structured path only when its
// From address exactly matches a sender registered in the extractor registry.
func NewSenderClassifier(registry interfaces.ExtractorRegistry) interfaces.SenderClassifier {
	return &senderClassifier{
		registry: registry,
	}
}

func (c *senderClassifier) Classify(envelope *models.MailEnvelope) enum.RoutingDecision {
	if envelope == nil || c.registry == nil {
		return enum.RoutingGenericForward
	}
	if _, ok := c.registry.Lookup(envelope.From); ok {
		return enum.RoutingStructuredRelease
	}
	return enum.RoutingGenericForward
}
