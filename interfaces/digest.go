package interfaces

import "github.com/releasewatch/mailparser/internal/models"

type DigestBuilder interface {
	Build(envelope *models.MailEnvelope) (*models.ForwardDigest, error)
}
