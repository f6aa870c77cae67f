package interfaces

import (
	"github.com/releasewatch/mailparser/internal/enum"
	"github.com/releasewatch/mailparser/internal/models"
)

type SenderClassifier interface {
	Classify(envelope *models.MailEnvelope) enum.RoutingDecision
}
