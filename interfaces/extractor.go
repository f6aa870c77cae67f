package interfaces

import (
	"context"

	"github.com/releasewatch/mailparser/internal/models"
)

// ReleaseExtractor turns the HTML body of a structured notification into a record.
// Failures caused by the HTML not matching the expected template wrap ErrStructuralMismatch.
type ReleaseExtractor interface {
	Extract(ctx context.Context, htmlBody string, envelope *models.MailEnvelope) (*models.ReleaseRecord, error)
}

type ExtractorRegistry interface {
	Register(sender string, extractor ReleaseExtractor)
	Lookup(sender string) (ReleaseExtractor, bool)
}
