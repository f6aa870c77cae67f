package dto

import (
	"github.com/releasewatch/mailparser/internal/enum"
	"github.com/releasewatch/mailparser/internal/models"
)

// InspectionResult is the offline view of what the pipeline would do with a message.
type InspectionResult struct {
	From     string                `json:"from"`
	To       string                `json:"to"`
	Subject  string                `json:"subject"`
	Routing  enum.RoutingDecision  `json:"routing"`
	Release  *models.ReleaseRecord `json:"release,omitempty"`
	Digest   *models.ForwardDigest `json:"digest,omitempty"`
	Mismatch string                `json:"mismatch,omitempty"`
}
