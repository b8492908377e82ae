package testutil

import (
	"net/http"
	"time"

	"fordeling/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped time used for age computations.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
