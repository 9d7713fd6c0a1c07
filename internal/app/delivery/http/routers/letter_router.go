package routers

import (
	"nhscribe-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachLetterRoutes(router chi.Router, letterController *controllers.LetterController) {
	router.Get("/recent", letterController.RecentLetters)
	router.Post("/{letter_id}/status/advance", letterController.AdvanceStatus)
	router.Get("/{letter_id}/audit", letterController.LetterAudit)
}
