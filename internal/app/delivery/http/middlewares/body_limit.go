package middlewares

import (
	"net/http"
	"strings"

	"nhscribe-service/internal/pkg/constvars"
)

const megabyte = 1 << 20

// BodyLimit bounds request bodies. Multipart uploads get the upload limit,
// everything else the JSON body limit.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) * megabyte
		if strings.HasPrefix(r.Header.Get(constvars.HeaderContentType), constvars.MIMEMultipartForm) {
			limit = int64(m.InternalConfig.App.MaxUploadSizeInMegabyte) * megabyte
		}
		if limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
