package routers

import (
	"nhscribe-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachReviewRoutes(router chi.Router, reviewController *controllers.ReviewController) {
	router.Post("/", reviewController.OpenReview)
	router.Get("/{review_id}", reviewController.GetReview)
	router.Put("/{review_id}/content", reviewController.EditContent)
	router.Post("/{review_id}/save", reviewController.SaveContent)
	router.Post("/{review_id}/status/advance", reviewController.AdvanceStatus)
	router.Get("/{review_id}/pdf", reviewController.ExportPDF)
	router.Delete("/{review_id}", reviewController.CloseReview)
}
