package interfaces

import (
	"context"

	"github.com/releasewatch/mailparser/internal/models"
)

type EnvelopeParser interface {
	Parse(ctx context.Context, raw []byte) (*models.MailEnvelope, error)
}
