package requests

type OpenReview struct {
	LetterID string `json:"letterId" validate:"required"`
}

type EditContent struct {
	Content string `json:"content"`
}
