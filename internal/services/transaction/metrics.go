package transaction

// MetricsCollector receives counters for transaction processing. Wire a
// real backend here if one ever lands; the engine only needs the calls.
type MetricsCollector interface {
	RecordTransaction(txType string, amount int64)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransaction(string, int64) {}
func (n *NoopMetricsCollector) RecordError(string, string)      {}
