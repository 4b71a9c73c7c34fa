package core

import "context"

// Operation metrics follow the social.<operation> naming convention: every
// coordinator call emits a .total counter and a .duration_ms histogram,
// both tagged with the operation name and a success/failure status.
const (
	operationMetricPrefix   = "social."
	operationCounterSuffix  = ".total"
	operationDurationSuffix = ".duration_ms"
)

func operationCounterName(operation string) string {
	return operationMetricPrefix + operation + operationCounterSuffix
}

func operationDurationName(operation string) string {
	return operationMetricPrefix + operation + operationDurationSuffix
}

// NopMetricsRecorder discards the coordinator's operation metrics. It is
// the default when no recorder is configured.
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

// cloneTags hands each recorder call its own tag map so implementations
// cannot mutate the coordinator's operation tags.
func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}

var _ MetricsRecorder = NopMetricsRecorder{}
