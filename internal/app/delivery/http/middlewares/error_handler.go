package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				var err error
				switch x := rec.(type) {
				case string:
					err = errors.New(x)
				case error:
					err = x
				default:
					err = fmt.Errorf("%v", x)
				}

				m.Log.Error("ErrorHandler recovered panic",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
					zap.String(constvars.LoggingEndpointKey, r.URL.Path),
					zap.Error(err),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRecoveredPanic(err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
