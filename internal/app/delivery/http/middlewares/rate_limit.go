package middlewares

import (
	"net/http"
	"time"

	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"github.com/go-chi/httprate"
)

// GlobalRateLimit caps every client at App.MaxRequests per second.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests())
		}),
	)
}
