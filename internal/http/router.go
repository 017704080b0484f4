package httpserver

import "net/http"

// Routes aggregates handlers for HTTP server.
type Routes struct {
	Health http.HandlerFunc
}

// NewRouter wires all HTTP routes. The liveness probe answers on the root
// path only, matching what orchestration platforms are configured against;
// any other path is 404.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Health != nil {
		mux.Handle("/", exactPath("/", method(http.MethodGet, routes.Health)))
	}
	return mux
}

func exactPath(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != expected {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
