// Package pagectx assembles the per-request presentation context: the
// bag of values (deployment mode, greeting, theme class, accumulated
// stylesheets, query parameters) that templates consume.
//
// The context is a value, not a shared object. Each pipeline stage
// derives a new Context from its input and stores it back on the
// request; nothing is mutated in place, so the accumulation order is
// auditable and a later stage can never clobber an earlier one.
//
//	r.Use(pagectx.Middleware())           // seed: env, greeting, theme, query
//	r.Route("/catalog", func(r chi.Router) {
//		r.Use(pagectx.Style("/css/catalog.css"))
//		...
//	})
package pagectx
