package model

// ChatRequest representa a requisição para o endpoint de chat
type ChatRequest struct {
	Text string `json:"text"`
}

// ChatResponse representa a resposta do endpoint de chat
type ChatResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse é o corpo devolvido em respostas 4xx/5xx
type ErrorResponse struct {
	Detail string `json:"detail"`
}
