// Package server implements the read-study HTTP API.
//
// # Endpoints
//
// Auth: POST /api/auth/login, POST /api/auth/logout, GET /api/auth/status.
// Login validates the shared platform password, registers the inspector,
// and issues a bearer token; every other authenticated endpoint resolves
// that token through the session registry.
//
// Cases: GET /api/patients lists the volume library together with the
// calling inspector's submitted cases. GET /api/patients/{id}/info loads
// a case into the caller's session cache and summarizes it. POST
// /api/patients/slice renders one windowed axial slice.
//
// Analysis: POST /api/analysis/submit records a CECT/sCECT read. GET
// /api/analysis/patients/{id} lists every inspector's read of one case.
//
// Unauthenticated: GET /api/status and GET /api/window-presets.
//
// Domain sentinel errors map onto HTTP statuses in statusForError; the
// body of every failure is {"error": "..."}.
package server
