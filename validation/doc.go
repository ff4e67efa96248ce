// Package validation provides shared primitives for validating untrusted
// transaction feeds.
//
// The package includes raw-value classification and stringification rules
// used by field validators, plus context helpers for injecting the logging
// collaborator.
//
// Typical usage at job ingress:
//
//	ctx = validation.ContextWithLogger(ctx, logger)
//	result, err := validator.Validate(ctx, rawBatch)
//
// This package is intentionally dependency-light; the transaction rules live
// in the transaction subpackage and logging adapters in log and zap.
package validation
