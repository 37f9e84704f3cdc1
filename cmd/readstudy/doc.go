// Package main hosts the readstudy CLI entrypoint and command graph.
//
// The Cobra-based command tree covers configuration scaffolding, case
// library inspection, result queries, CSV exports, synthetic data
// generation, readiness checks, and a foreground daemon mode. It
// centralizes configuration resolution so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
