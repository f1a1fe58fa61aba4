package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/vitormoschetta/go-bedrock-chat/internal/config"
	"github.com/vitormoschetta/go-bedrock-chat/internal/metrics"
)

// RetrieveAndGenerateAPI é o subconjunto do cliente Bedrock Agent Runtime usado aqui
type RetrieveAndGenerateAPI interface {
	RetrieveAndGenerate(ctx context.Context, params *bedrockagentruntime.RetrieveAndGenerateInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)
}

// NewBedrockClient cria o cliente usando a cadeia padrão de credenciais da AWS
func NewBedrockClient(ctx context.Context, cfg config.AWSConfig, httpClient *http.Client) (*bedrockagentruntime.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if httpClient != nil {
		opts = append(opts, awsconfig.WithHTTPClient(httpClient))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return bedrockagentruntime.NewFromConfig(awsCfg), nil
}

// BedrockGenerator consulta uma knowledge base via RetrieveAndGenerate
type BedrockGenerator struct {
	client          RetrieveAndGenerateAPI
	knowledgeBaseID string
	modelARN        string
	logger          *slog.Logger
}

func NewBedrockGenerator(client RetrieveAndGenerateAPI, cfg config.AWSConfig, logger *slog.Logger) *BedrockGenerator {
	return &BedrockGenerator{
		client:          client,
		knowledgeBaseID: cfg.KnowledgeBaseID,
		modelARN:        cfg.InferenceProfileARN,
		logger:          logger,
	}
}

// Generate envia o texto sem alterações e devolve output.text.
// Toda falha é devolvida como *GenerateError, sem retentativas.
func (g *BedrockGenerator) Generate(ctx context.Context, text string) (string, error) {
	start := time.Now()
	answer, err := g.retrieveAndGenerate(ctx, text)
	metrics.ObserveGeneratorCall(time.Since(start), err)
	if err != nil {
		genErr := newGenerateError(err)
		metrics.IncGeneratorError(genErr.Kind)
		return "", genErr
	}
	return answer, nil
}

func (g *BedrockGenerator) retrieveAndGenerate(ctx context.Context, text string) (string, error) {
	out, err := g.client.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &types.RetrieveAndGenerateInput{
			Text: aws.String(text),
		},
		RetrieveAndGenerateConfiguration: &types.RetrieveAndGenerateConfiguration{
			Type: types.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &types.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(g.knowledgeBaseID),
				ModelArn:        aws.String(g.modelARN),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if out == nil || out.Output == nil || out.Output.Text == nil {
		return "", ErrMissingOutput
	}

	g.logger.Debug("retrieve and generate completed", "session_id", aws.ToString(out.SessionId), "citations", len(out.Citations))
	return aws.ToString(out.Output.Text), nil
}
