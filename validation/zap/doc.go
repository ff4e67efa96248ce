// Package zap provides a zap-backed implementation of the log.Logger
// interface, including OpenTelemetry trace correlation and an
// environment-profiled constructor.
package zap
