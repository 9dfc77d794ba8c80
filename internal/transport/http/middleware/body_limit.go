package middleware

import (
	"net/http"

	"backoffice/internal/transport/http/api"
)

// BodyLimit caps request bodies on the write methods. A declared length over
// the cap is rejected before any of the body is read; chunked bodies are cut
// off mid-read by MaxBytesReader.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 {
				switch r.Method {
				case http.MethodPost, http.MethodPut, http.MethodPatch:
					if r.ContentLength > maxBytes {
						api.Fail(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body exceeds the allowed size", GetRequestID(r.Context()))
						return
					}
					r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
