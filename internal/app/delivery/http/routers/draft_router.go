package routers

import (
	"nhscribe-service/internal/app/delivery/http/controllers"
	"nhscribe-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDraftRoutes(router chi.Router, generateLimiter *middlewares.RateLimiter, draftController *controllers.DraftController) {
	router.Post("/", draftController.StartDraft)
	router.Get("/{draft_id}", draftController.GetDraft)
	router.Patch("/{draft_id}", draftController.UpdateDraft)
	router.Post("/{draft_id}/patient/check", draftController.CheckPatient)
	router.Post("/{draft_id}/patient", draftController.CreatePatient)
	router.Put("/{draft_id}/results/text", draftController.IngestText)
	router.Post("/{draft_id}/results/csv", draftController.IngestCSV)
	router.Get("/{draft_id}/results/existing", draftController.LoadExistingResults)
	router.With(generateLimiter.Limit).Post("/{draft_id}/generate", draftController.Generate)
	router.Get("/{draft_id}/preview", draftController.Preview)
}
