// Package session provides durable, cookie-backed visitor sessions with
// pluggable storage and background expiry cleanup.
//
// A Session is a server-side record keyed by an opaque token; the token
// travels to the browser in an HMAC-signed, HTTP-only cookie. The
// cookie's max-age is only an upper bound — the store's expiry time is
// the authority on whether a presented token is still live.
//
// Authentication state is a derived, tagged value: Session.Identity()
// returns either Anonymous or Authenticated with a user ID, computed
// from the live record each time. Guards never cache the answer.
//
// Three Store implementations are provided: MemoryStore for tests and
// development, PGStore on PostgreSQL (self-provisioning schema), and
// RedisStore. All serialize conflicting writes per token and are safe
// for unbounded concurrent access across distinct tokens.
//
// The Cleaner sweeps expired records on its own timer, decoupled from
// request traffic:
//
//	cleaner := session.NewCleaner(store, log, 30*time.Second)
//	cleaner.Start(15 * time.Minute)
//	defer cleaner.Stop()
//
// When the backing store is unreachable, resolution degrades to a
// transient anonymous session instead of failing the request; only
// guarded routes notice, and they treat the visitor as not logged in.
package session
