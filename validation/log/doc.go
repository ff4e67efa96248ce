// Package log defines the logging interface injected into validators and the
// typed fields attached to log events.
//
// The validator core only depends on Logger; adapters (such as the zap
// package) implement it so host applications choose the sink and format.
package log
