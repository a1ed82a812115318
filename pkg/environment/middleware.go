package environment

import "net/http"

// Middleware attaches env to every request context. It is the first
// stage of the request pipeline; later stages (cookie policy, error
// rendering, presentation context) read the mode from the context
// instead of consulting process state.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}
