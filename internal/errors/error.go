package errors

import "github.com/pkg/errors"

var (
	// envelope errors
	ErrEnvelopeUnparseable   = errors.New("message envelope could not be parsed")
	ErrSenderUnresolvable    = errors.New("sender address could not be resolved")
	ErrRecipientUnresolvable = errors.New("recipient address could not be resolved")
	ErrDateMissing           = errors.New("message date is missing")
	ErrNoTextBody            = errors.New("message has no plain-text body part")

	// extraction errors
	ErrStructuralMismatch = errors.New("structural mismatch")
	ErrNoExtractor        = errors.New("no extractor registered for sender")

	// trigger errors
	ErrEmptyEvent = errors.New("event contains no records")
)

// StructuralMismatch wraps ErrStructuralMismatch with the missing anchor.
func StructuralMismatch(reason string) error {
	return errors.Wrap(ErrStructuralMismatch, reason)
}

// IsStructuralMismatch reports whether err was produced by a failed extraction.
func IsStructuralMismatch(err error) bool {
	return errors.Is(err, ErrStructuralMismatch)
}
