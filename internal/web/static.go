package web

import "embed"

// Static assets served under /css. Embedded so the binary is
// self-contained.
//
//go:embed static
var staticFS embed.FS
