// Package telemetry is a thin, opt-in observation hook. The checker itself
// performs no logging by default — diagnostics-as-data is the observability
// surface (spec §1b), matching the teacher, which pulls in no logging
// library either. A host embedding the checker (an LSP server, a batch CLI
// — both out of scope here) can observe pass timings without this module
// choosing a logging backend for it.
package telemetry

import "time"

// Recorder observes phase boundaries during a Check run. Implementations
// are free to forward to any logging or metrics backend.
type Recorder interface {
	PassStarted(runID string, pass string)
	PassFinished(runID string, pass string, dur time.Duration)
	SCCComputed(runID string, sccCount int)
}

// noop is the default Recorder: it observes nothing.
type noop struct{}

func (noop) PassStarted(string, string)               {}
func (noop) PassFinished(string, string, time.Duration) {}
func (noop) SCCComputed(string, int)                   {}

// NoOp is the default, silent Recorder.
var NoOp Recorder = noop{}
