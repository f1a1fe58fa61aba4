package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/vitormoschetta/go-bedrock-chat/internal/config"
	"github.com/vitormoschetta/go-bedrock-chat/internal/metrics"
	"github.com/vitormoschetta/go-bedrock-chat/internal/model"
	"github.com/vitormoschetta/go-bedrock-chat/internal/service"
)

// Mensagens devolvidas ao cliente em respostas 400
const (
	MsgEmptyQuestion = "La pregunta no puede estar vacía"
	MsgInvalidJSON   = "Formato JSON inválido"
)

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	generator service.Generator
	aws       config.AWSConfig
	logger    *slog.Logger
}

// NewHandler cria uma nova instância do Handler
func NewHandler(generator service.Generator, aws config.AWSConfig, logger *slog.Logger) *Handler {
	return &Handler{
		generator: generator,
		aws:       aws,
		logger:    logger,
	}
}

// HandleRoot retorna informações sobre o serviço
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Bedrock Knowledge Base Chat",
		"endpoints": map[string]interface{}{
			"chat": map[string]interface{}{
				"path":        "/chat",
				"method":      "POST",
				"description": "Ask a question to the knowledge base",
				"example":     model.ChatRequest{Text: "What is X?"},
			},
			"health": map[string]string{
				"path":   "/health",
				"method": "GET",
			},
			"metrics": map[string]string{
				"path":   "/metrics",
				"method": "GET",
			},
		},
		"knowledge_base_id": h.aws.KnowledgeBaseID,
	})
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// HandleChat valida a pergunta, consulta a knowledge base e devolve a resposta
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("error parsing JSON", "err", err)
		metrics.IncValidationReject()
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	if isBlank(req.Text) {
		metrics.IncValidationReject()
		writeError(w, http.StatusBadRequest, MsgEmptyQuestion)
		return
	}

	h.logger.Info("making request",
		"text", req.Text,
		"knowledge_base_id", h.aws.KnowledgeBaseID,
		"inference_profile_arn", h.aws.InferenceProfileARN,
	)

	answer, err := h.generator.Generate(r.Context(), req.Text)
	if err != nil {
		// o texto bruto do erro é exposto ao cliente
		h.logger.Error("error occurred", "kind", service.ErrorKind(err), "err", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{Answer: answer})
}

// isBlank trata como espaço também os separadores U+001C..U+001F
func isBlank(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
	}) == ""
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, model.ErrorResponse{Detail: detail})
}
