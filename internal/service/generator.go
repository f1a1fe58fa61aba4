package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Generator gera uma resposta para uma pergunta em linguagem natural
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// Tipos de erro que não vêm de um código da API da AWS
const (
	KindMissingOutput = "MissingOutput"
	KindCanceled      = "Canceled"
)

// ErrMissingOutput indica uma resposta sem output.text
var ErrMissingOutput = errors.New("retrieve and generate response has no output text")

// GenerateError é a única forma de falha devolvida por um Generator.
// Kind permite distinguir categorias; Error() preserva a mensagem original.
type GenerateError struct {
	Kind string
	Err  error
}

func (e *GenerateError) Error() string {
	return e.Err.Error()
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// ErrorKind retorna o Kind de um GenerateError ou o tipo Go do erro
func ErrorKind(err error) string {
	var genErr *GenerateError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return fmt.Sprintf("%T", err)
}

func newGenerateError(err error) *GenerateError {
	return &GenerateError{Kind: classify(err), Err: err}
}

func classify(err error) string {
	var apiErr smithy.APIError
	switch {
	case errors.Is(err, ErrMissingOutput):
		return KindMissingOutput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &apiErr):
		return apiErr.ErrorCode()
	default:
		return fmt.Sprintf("%T", err)
	}
}
