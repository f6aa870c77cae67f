package interfaces

import (
	"context"

	"github.com/releasewatch/mailparser/internal/enum"
)

type EmailProcessor interface {
	Process(ctx context.Context, bucket, key string) (enum.PipelineOutcome, error)
}
