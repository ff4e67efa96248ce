// Package transaction validates and normalizes batches of untrusted
// transaction records.
//
// Core flow:
//   - ValidateRecord applies per-field validation and normalization to one
//     raw record.
//   - BatchValidator.Validate runs a whole batch in input order, detects
//     duplicate transaction IDs (first occurrence wins), and partitions the
//     output into valid transactions and positional invalid reports with
//     aggregate statistics.
//
// The package enforces deterministic behavior using typed domain errors;
// only a batch input that is not a record sequence at all fails the call.
package transaction
