// Package volume owns loaded CT volumes and the on-disk library they come
// from. A Volume is an immutable rank-3 grid of float32 Hounsfield samples
// loaded whole from a NumPy .npy file named after its case identity. The
// Store scans a single data directory and exposes the Library interface so
// callers can swap in test doubles.
package volume
