// Package pg wires pgx connection pooling for the session backend:
// retrying startup connects, optional private-CA verification, and a
// readiness probe.
package pg
