// Package effectmetrics provides an optional Prometheus Recorder for the
// effects engine, grounded on the teacher's server-side metrics registry
// pattern. Every method is nil-receiver safe so hosts that do not care
// about metrics can pass a nil *Recorder wherever one is accepted.
package effectmetrics
