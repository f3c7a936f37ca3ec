package middleware

import "net/http"

// MaxRequestSize caps request bodies. Oversized JSON bodies fail on decode
// with 400; oversized uploads fail inside multipart parsing.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
