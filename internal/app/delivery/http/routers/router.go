package routers

import (
	"strings"

	"nhscribe-service/internal/app/config"
	"nhscribe-service/internal/app/delivery/http/controllers"
	"nhscribe-service/internal/app/delivery/http/middlewares"
	"nhscribe-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	generateLimiter *middlewares.RateLimiter,
	draftController *controllers.DraftController,
	reviewController *controllers.ReviewController,
	letterController *controllers.LetterController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins(internalConfig.App.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderXArchiveObjectKey, constvars.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.GlobalRateLimit())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/drafts", func(r chi.Router) {
			attachDraftRoutes(r, generateLimiter, draftController)
		})

		r.Route("/reviews", func(r chi.Router) {
			attachReviewRoutes(r, reviewController)
		})

		r.Route("/letters", func(r chi.Router) {
			attachLetterRoutes(r, letterController)
		})
	})
}

func allowedOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = append(origins, "*")
	}
	return origins
}
