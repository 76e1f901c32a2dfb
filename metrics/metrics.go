// Package metrics records classification outcomes.
package metrics

import "time"

// Counter and latency names emitted by the parser.
const (
	EventClassified   = "classified"
	EventFailed       = "failed"
	OperationClassify = "classify"
)

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
