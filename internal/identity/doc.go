// Package identity verifies and registers email/password credentials.
// Two backends exist: a PostgreSQL-backed verifier for production and
// an in-memory verifier seedable from the environment for demos and
// tests. Both hash with bcrypt and answer every mismatch with
// ErrInvalidCredentials so callers cannot probe which emails exist.
package identity
