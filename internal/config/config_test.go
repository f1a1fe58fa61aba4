package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
		EnvAWSRegion, EnvKnowledgeBaseID, EnvInferenceProfileARN,
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, []string{EnvAWSRegion, EnvKnowledgeBaseID, EnvInferenceProfileARN}, cfg.AWS.Missing())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvAWSRegion, "us-east-1")
	t.Setenv(EnvKnowledgeBaseID, "KB123")
	t.Setenv(EnvInferenceProfileARN, "arn:aws:bedrock:us-east-1:123456789012:inference-profile/test")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SHUTDOWN_TIMEOUT", "10s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_FILE", "/tmp/chat.log")

	cfg := Load()

	assert.Equal(t, AWSConfig{
		Region:              "us-east-1",
		KnowledgeBaseID:     "KB123",
		InferenceProfileARN: "arn:aws:bedrock:us-east-1:123456789012:inference-profile/test",
	}, cfg.AWS)
	assert.Empty(t, cfg.AWS.Missing())
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json", File: "/tmp/chat.log"}, cfg.Log)
}
