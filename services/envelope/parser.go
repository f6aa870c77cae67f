package envelope

import (
	"bytes"
	"context"
	"strings"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/jhillyerd/enmime"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/interfaces"
	mperrors "github.com/releasewatch/mailparser/internal/errors"
	"github.com/releasewatch/mailparser/internal/models"
	"github.com/releasewatch/mailparser/internal/tracing"
)

const contentTypeTextPlain = "text/plain"

type envelopeParser struct{}

func NewEnvelopeParser() interfaces.EnvelopeParser {
	return &envelopeParser{}
}

// Parse decodes a raw MIME message. Only the From address is mandatory here;
// recipient and date are checked by the paths that need them.
func (p *envelopeParser) Parse(ctx context.Context, raw []byte) (*models.MailEnvelope, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "EnvelopeParser.Parse")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("size", len(raw))

	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		err = errors.Wrap(mperrors.ErrEnvelopeUnparseable, err.Error())
		tracing.TraceErr(span, err)
		return nil, err
	}

	from, err := firstAddress(env, "From")
	if err != nil || from == "" {
		err = errors.Wrapf(mperrors.ErrSenderUnresolvable, "from header %q", env.GetHeader("From"))
		tracing.TraceErr(span, err)
		return nil, err
	}
	tracing.TagSender(span, from)

	envelope := &models.MailEnvelope{
		From:    from,
		Subject: env.GetHeader("Subject"),
	}

	if to, err := firstAddress(env, "To"); err == nil && isValidAddress(to) {
		envelope.To = to
	}

	if date, err := env.Date(); err == nil {
		envelope.Date = date
	}

	if env.HTML != "" {
		html := env.HTML
		envelope.HTMLBody = &html
	}

	if hasPlainTextPart(env) {
		text := env.Text
		envelope.TextBody = &text
	}

	return envelope, nil
}

func firstAddress(env *enmime.Envelope, header string) (string, error) {
	addresses, err := env.AddressList(header)
	if err != nil {
		return "", err
	}
	if len(addresses) == 0 || addresses[0] == nil {
		return "", nil
	}
	return addresses[0].Address, nil
}

func isValidAddress(address string) bool {
	if address == "" {
		return false
	}
	return mailvalidate.ValidateEmailSyntax(address).IsValid
}

// hasPlainTextPart distinguishes a real text/plain part from the text enmime
// down-converts out of an HTML-only message.
func hasPlainTextPart(env *enmime.Envelope) bool {
	if env.HTML == "" {
		return env.Text != "" || isPlainText(env.Root)
	}
	if env.Root == nil {
		return false
	}
	return env.Root.BreadthMatchFirst(isPlainText) != nil
}

func isPlainText(part *enmime.Part) bool {
	if part == nil {
		return false
	}
	if strings.EqualFold(part.Disposition, "attachment") {
		return false
	}
	return strings.EqualFold(part.ContentType, contentTypeTextPlain)
}
