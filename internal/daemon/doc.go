// Package daemon coordinates the long-running readstudy process.
//
// It wires configuration, the results store, the volume library, the
// session registry, and the HTTP API into a single lifecycle with
// flock-based locking to prevent multiple instances. Run is the process
// entry point: it prepares directories, runs preflight checks, writes a
// PID file, and blocks until SIGINT or SIGTERM.
package daemon
