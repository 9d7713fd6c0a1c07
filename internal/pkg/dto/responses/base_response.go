package responses

type ResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
