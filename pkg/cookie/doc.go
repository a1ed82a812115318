// Package cookie provides an HMAC-signing cookie manager with secret
// rotation support.
//
// Session identifiers travel to the browser as signed cookies: the
// client can read the value but cannot forge or alter it without the
// server-side secret. Multiple secrets may be configured so keys can
// rotate without invalidating every live session; the first secret
// signs, all secrets verify.
//
//	mgr, err := cookie.New([]string{os.Getenv("SESSION_SECRET")})
//	mgr.SetSigned(w, "sid", token, cookie.WithMaxAge(86400))
package cookie
