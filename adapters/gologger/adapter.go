// Package gologger bridges the SDK's go-logger stack into the go-job
// contracts so the analytics flush worker logs through the host
// application's logging setup.
package gologger

import (
	job "github.com/goliatone/go-job"
	glog "github.com/goliatone/go-logger/glog"
)

// SDKLoggerName is the logger name the SDK resolves its components under.
const SDKLoggerName = "social"

// Resolve picks the SDK logger with deterministic precedence: a provider's
// named logger wins, then a directly supplied logger, then a nop fallback.
// An empty name resolves under SDKLoggerName.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	if name == "" {
		name = SDKLoggerName
	}
	return glog.Resolve(name, provider, logger)
}

// ToWorkerProvider exposes a glog provider to go-job so queue workers
// draining analytics flush jobs resolve named loggers from the same stack
// as the coordinator.
func ToWorkerProvider(provider glog.LoggerProvider) job.LoggerProvider {
	if provider == nil {
		return nil
	}
	return job.GoLoggerProvider(provider)
}

// ToWorkerLogger exposes a glog logger to go-job for worker hooks that take
// a single logger instead of a provider.
func ToWorkerLogger(logger glog.Logger) job.Logger {
	if logger == nil {
		return nil
	}
	return job.GoLogger(logger)
}

// ResolveForFlushWorker resolves the SDK logger and returns the go-job
// bridges a flush worker wires into its queue runtime alongside the
// gojob adapters.
func ResolveForFlushWorker(
	name string,
	provider glog.LoggerProvider,
	logger glog.Logger,
) (glog.LoggerProvider, glog.Logger, job.LoggerProvider, job.Logger) {
	resolvedProvider, resolvedLogger := Resolve(name, provider, logger)
	return resolvedProvider, resolvedLogger, ToWorkerProvider(resolvedProvider), ToWorkerLogger(resolvedLogger)
}
