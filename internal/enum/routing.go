package enum

type RoutingDecision string

const (
	RoutingStructuredRelease RoutingDecision = "structured_release"
	RoutingGenericForward    RoutingDecision = "generic_forward"
)

func (t RoutingDecision) String() string {
	return string(t)
}

type PipelineOutcome string

const (
	OutcomeStored    PipelineOutcome = "stored"
	OutcomeForwarded PipelineOutcome = "forwarded"
	// OutcomeSkipped marks a structured message whose HTML did not match the template.
	OutcomeSkipped PipelineOutcome = "skipped"
)

func (t PipelineOutcome) String() string {
	return string(t)
}
