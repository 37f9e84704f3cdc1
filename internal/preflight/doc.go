// Package preflight provides readiness checks for the filesystem paths
// the read-study daemon depends on.
//
// The daemon runs RunAll at startup and refuses to serve when a check
// fails. The CLI "readstudy preflight" command prints the same results
// so operators can diagnose a misconfigured install without starting
// the daemon.
package preflight
