package interfaces

import (
	"context"

	"github.com/releasewatch/mailparser/internal/models"
)

type ReleaseRepository interface {
	Upsert(ctx context.Context, record *models.ReleaseRecord) error
	ListByRecipient(ctx context.Context, recipient string) ([]*models.ReleaseRecord, error)
}
