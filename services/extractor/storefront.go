package extractor

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/releasewatch/mailparser/interfaces"
	mperrors "github.com/releasewatch/mailparser/internal/errors"
	"github.com/releasewatch/mailparser/internal/models"
	"github.com/releasewatch/mailparser/internal/tracing"
)

var (
	releasedPattern = regexp.MustCompile(`released`)
	byPattern       = regexp.MustCompile(`by`)

	validate = validator.New()
)

type storefrontExtractor struct{}

// NewStorefrontExtractor reads the storefront's "<label> just released <title> by <artist>"
// notification. It only looks at the first div of the document.
func NewStorefrontExtractor() interfaces.ReleaseExtractor {
	return &storefrontExtractor{}
}

func (e *storefrontExtractor) Extract(ctx context.Context, htmlBody string, envelope *models.MailEnvelope) (*models.ReleaseRecord, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "StorefrontExtractor.Extract")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	record, err := e.extract(htmlBody, envelope)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	tracing.LogObjectAsJson(span, "record", record)
	return record, nil
}

func (e *storefrontExtractor) extract(htmlBody string, envelope *models.MailEnvelope) (*models.ReleaseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, mperrors.StructuralMismatch("html body could not be parsed")
	}

	container := doc.Find("div").First()
	if container.Length() == 0 {
		return nil, mperrors.StructuralMismatch("no div container")
	}

	scanner := newTextScanner(descendantTexts(container.Get(0)))

	labelLine, ok := scanner.find(releasedPattern)
	if !ok {
		return nil, mperrors.StructuralMismatch("released clause not found")
	}
	label := stripAll(labelLine, " just released ", "\n")

	afterLabel := scanner.position()
	title, ok := scanner.next()
	if !ok {
		return nil, mperrors.StructuralMismatch("unexpected end of text after released clause")
	}

	// The artist search restarts right after the label line, so the title text is a candidate too.
	scanner.seek(afterLabel)
	var artist *string
	if artistLine, ok := scanner.find(byPattern); ok {
		value := stripAll(artistLine, " by ", "\n", ", ")
		artist = &value
	}

	anchor := container.Find("a").First()
	if anchor.Length() == 0 {
		return nil, mperrors.StructuralMismatch("no anchor in container")
	}
	href, ok := anchor.Attr("href")
	if !ok {
		return nil, mperrors.StructuralMismatch("anchor has no href")
	}

	image := anchor.Find("img").First()
	if image.Length() == 0 {
		return nil, mperrors.StructuralMismatch("no image inside anchor")
	}
	src, ok := image.Attr("src")
	if !ok {
		return nil, mperrors.StructuralMismatch("image has no src")
	}

	if envelope == nil || envelope.To == "" {
		return nil, mperrors.ErrRecipientUnresolvable
	}
	if envelope.Date.IsZero() {
		return nil, mperrors.ErrDateMissing
	}

	record := &models.ReleaseRecord{
		Recipient: envelope.To,
		Date:      envelope.Date.Format(time.RFC3339),
		Label:     label,
		Title:     title,
		Artist:    artist,
		Link:      stripQuery(href),
		CoverLink: src,
	}
	if err := validate.Struct(record); err != nil {
		return nil, errors.Wrap(mperrors.StructuralMismatch("incomplete release record"), err.Error())
	}

	return record, nil
}

func stripAll(s string, substrings ...string) string {
	for _, sub := range substrings {
		s = strings.ReplaceAll(s, sub, "")
	}
	return s
}

func stripQuery(link string) string {
	base, _, _ := strings.Cut(link, "?")
	return base
}
