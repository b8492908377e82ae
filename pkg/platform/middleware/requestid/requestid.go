package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"fordeling/pkg/requestcontext"
)

// Header carries the request ID in both directions. Callers inside the NAV
// platform send their call ID here.
const Header = "Nav-Call-Id"

const maxLength = 128

// Middleware reuses a caller-provided request ID or generates one, stores it
// in the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
