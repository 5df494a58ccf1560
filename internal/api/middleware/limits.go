package middleware

import (
	"net/http"
)

// MaxUploadSize caps the request body. Oversized uploads surface as
// multipart read errors in the handler, which maps them to 413.
func MaxUploadSize(limit int64) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next(w, r)
		}
	}
}
