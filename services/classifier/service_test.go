package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/releasewatch/mailparser/internal/enum"
	"github.com/releasewatch/mailparser/internal/models"
	"github.com/releasewatch/mailparser/services/extractor"
)

func TestSenderClassifier_Classify(t *testing.T) {
	classifier := NewSenderClassifier(extractor.NewDefaultRegistry("noreply@bandcamp.com"))

	tests := []struct {
		name     string
		from     string
		expected enum.RoutingDecision
	}{
		{"registered sender", "noreply@bandcamp.com", enum.RoutingStructuredRelease},
		{"different sender", "friend@example.com", enum.RoutingGenericForward},
		{"case differs", "NOREPLY@bandcamp.com", enum.RoutingGenericForward},
		{"sender as substring", "noreply@bandcamp.com.evil.example", enum.RoutingGenericForward},
		{"empty sender", "", enum.RoutingGenericForward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := classifier.Classify(&models.MailEnvelope{From: tt.from})
			assert.Equal(t, tt.expected, decision)
		})
	}
}

func TestSenderClassifier_NilInputs(t *testing.T) {
	assert.Equal(t, enum.RoutingGenericForward, NewSenderClassifier(nil).Classify(&models.MailEnvelope{From: "noreply@bandcamp.com"}))
	assert.Equal(t, enum.RoutingGenericForward, NewSenderClassifier(extractor.NewRegistry()).Classify(nil))
}
