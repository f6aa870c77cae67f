package digest

import (
	"regexp"

	"github.com/releasewatch/mailparser/interfaces"
	mperrors "github.com/releasewatch/mailparser/internal/errors"
	"github.com/releasewatch/mailparser/internal/models"
)

var lineBreakPattern = regexp.MustCompile(`\r?\n`)

type digestBuilder struct{}

func NewDigestBuilder() interfaces.DigestBuilder {
	return &digestBuilder{}
}

func (b *digestBuilder) Build(envelope *models.MailEnvelope) (*models.ForwardDigest, error) {
	if !envelope.HasTextBody() {
		return nil, mperrors.ErrNoTextBody
	}

	return &models.ForwardDigest{
		Subject: envelope.Subject,
		From:    envelope.From,
		Body:    NormalizeLineBreaks(*envelope.TextBody),
	}, nil
}

// NormalizeLineBreaks replaces every LF or CRLF with a single space.
func NormalizeLineBreaks(body string) string {
	return lineBreakPattern.ReplaceAllString(body, " ")
}
