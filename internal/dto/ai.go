package dto

// GenerateRequest is the JSON body for POST /ai/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Mode   string `json:"mode" binding:"omitempty,oneof=title description"`
}

// GenerateResponse is returned by POST /ai/generate.
type GenerateResponse struct {
	Content string `json:"content"`
}
