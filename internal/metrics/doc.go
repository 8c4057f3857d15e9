// Package metrics provides the observability hooks for timer tool calls.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	svc := timer.NewService(store) // NoopRecorder
//	svc = timer.NewService(store, timer.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The Prometheus implementation is only exposed over HTTP when a listen
// address is configured; the tool transport itself stays on stdio.
package metrics
