package models

import "time"

// MailEnvelope is the parsed view of one raw MIME message.
type MailEnvelope struct {
	From     string
	To       string
	Subject  string
	Date     time.Time
	HTMLBody *string
	TextBody *string
}

func (e *MailEnvelope) HasHTMLBody() bool {
	return e != nil && e.HTMLBody != nil
}

func (e *MailEnvelope) HasTextBody() bool {
	return e != nil && e.TextBody != nil
}
