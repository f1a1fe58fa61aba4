package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa a configuração do processo. É lida uma única vez na
// inicialização e passada por valor para os componentes.
type Config struct {
	Server ServerConfig
	AWS    AWSConfig
	Log    LogConfig
}

// ServerConfig configura o servidor HTTP
type ServerConfig struct {
	Host            string
	Port            int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Addr retorna o endereço host:port de escuta
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AWSConfig identifica a knowledge base e o modelo usados no RetrieveAndGenerate
type AWSConfig struct {
	Region              string
	KnowledgeBaseID     string
	InferenceProfileARN string
}

// LogConfig configura o logger
type LogConfig struct {
	Level  string
	Format string
	File   string
}

const (
	EnvAWSRegion           = "AWS_REGION"
	EnvKnowledgeBaseID     = "KNOWLEDGE_BASE_ID"
	EnvInferenceProfileARN = "INFERENCE_PROFILE_ARN"
)

// Load lê as variáveis de ambiente. As três variáveis da AWS não têm valor
// padrão e não são validadas aqui; use Missing para saber quais estão vazias.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	return Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		AWS: AWSConfig{
			Region:              v.GetString(EnvAWSRegion),
			KnowledgeBaseID:     v.GetString(EnvKnowledgeBaseID),
			InferenceProfileARN: v.GetString(EnvInferenceProfileARN),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
	}
}

// Missing retorna os nomes das variáveis da AWS que estão vazias
func (c AWSConfig) Missing() []string {
	var missing []string
	if c.Region == "" {
		missing = append(missing, EnvAWSRegion)
	}
	if c.KnowledgeBaseID == "" {
		missing = append(missing, EnvKnowledgeBaseID)
	}
	if c.InferenceProfileARN == "" {
		missing = append(missing, EnvInferenceProfileARN)
	}
	return missing
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
