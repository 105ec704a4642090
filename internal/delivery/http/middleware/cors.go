package middleware

import (
	"net/http"
	"strings"
)

// CORS wraps next with cross-origin headers for origins on the allow list.
// Preflight OPTIONS requests are answered with 204 and never reach next.
// Requests from unknown origins pass through without CORS headers; the
// browser enforces the block.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSuffix(strings.TrimSpace(origin), "/")
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		_, originAllowed := allowed[origin]

		if r.Method == http.MethodOptions {
			if originAllowed {
				writePreflightHeaders(w.Header(), origin)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if !originAllowed {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(&allowOriginWriter{ResponseWriter: w, origin: origin}, r)
	})
}

func writePreflightHeaders(h http.Header, origin string) {
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Max-Age", "86400")
}

// allowOriginWriter stamps the allow-origin headers right before the status
// line goes out, so handlers that never touch headers still get them.
type allowOriginWriter struct {
	http.ResponseWriter
	origin string
}

func (w *allowOriginWriter) WriteHeader(code int) {
	w.Header().Set("Access-Control-Allow-Origin", w.origin)
	w.Header().Set("Access-Control-Allow-Credentials", "true")
	w.ResponseWriter.WriteHeader(code)
}
