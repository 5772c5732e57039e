package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskmate/internal/adapters/driven/storage/memory"
)

func clearAIEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestNewTextGenerator_UnconfiguredReturnsNil(t *testing.T) {
	clearAIEnv(t)
	cfg := memory.NewConfigStore()

	svc, err := NewTextGenerator(cfg)
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestNewTextGenerator_GeminiFromConfig(t *testing.T) {
	clearAIEnv(t)
	cfg := memory.NewConfigStore()
	require.NoError(t, cfg.Set("llm.api_key", "test-key"))

	svc, err := NewTextGenerator(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "gemini-2.5-flash", svc.ModelName())
}

func TestNewTextGenerator_GeminiFromEnv(t *testing.T) {
	clearAIEnv(t)
	t.Setenv("GEMINI_API_KEY", "env-key")
	cfg := memory.NewConfigStore()

	svc, err := NewTextGenerator(cfg)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestNewTextGenerator_Anthropic(t *testing.T) {
	clearAIEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	cfg := memory.NewConfigStore()
	require.NoError(t, cfg.Set("llm.provider", "anthropic"))
	require.NoError(t, cfg.Set("llm.model", "claude-3-5-haiku-latest"))

	svc, err := NewTextGenerator(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "claude-3-5-haiku-latest", svc.ModelName())
}

func TestNewTextGenerator_ExplicitProviderWithoutKeyFails(t *testing.T) {
	clearAIEnv(t)
	cfg := memory.NewConfigStore()
	require.NoError(t, cfg.Set("llm.provider", "gemini"))

	_, err := NewTextGenerator(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewTextGenerator_UnsupportedProvider(t *testing.T) {
	clearAIEnv(t)
	cfg := memory.NewConfigStore()
	require.NoError(t, cfg.Set("llm.provider", "bedrock"))

	_, err := NewTextGenerator(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bedrock")
}

func TestNewEmbeddingService_DefaultsToOllama(t *testing.T) {
	clearAIEnv(t)
	cfg := memory.NewConfigStore()

	svc, err := NewEmbeddingService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions())
}

func TestNewEmbeddingService_OpenAIWithoutKeyReturnsNil(t *testing.T) {
	clearAIEnv(t)
	cfg := memory.NewConfigStore()
	require.NoError(t, cfg.Set("embedding.provider", "openai"))

	svc, err := NewEmbeddingService(cfg)
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestNewEmbeddingService_OpenAI(t *testing.T) {
	clearAIEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")
	cfg := memory.NewConfigStore()
	require.NoError(t, cfg.Set("embedding.provider", "openai"))

	svc, err := NewEmbeddingService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "text-embedding-3-small", svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestValidateNilServicesIsNoop(t *testing.T) {
	require.NoError(t, ValidateTextGenerator(nil))
	require.NoError(t, ValidateEmbeddingService(nil))
}
