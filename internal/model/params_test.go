package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsift/internal/domain"
)

func defaultConfig() domain.GenerationConfig {
	return domain.GenerationConfig{
		Temperature:   0,
		TopP:          1,
		TopK:          50,
		MaxTokens:     4096,
		StopSequences: []string{},
	}
}

func TestAdapt_ProjectsExactVendorKeySet(t *testing.T) {
	for _, modelID := range SupportedModels() {
		vendor, err := VendorOf(modelID)
		require.NoError(t, err, modelID)

		out, err := Adapt(modelID, defaultConfig())
		require.NoError(t, err, modelID)

		mapping := MappingFor(vendor)
		assert.Len(t, out, len(mapping), modelID)
		for _, vendorName := range mapping {
			assert.Contains(t, out, vendorName, modelID)
		}
	}
}

func TestAdapt_Anthropic(t *testing.T) {
	out, err := Adapt("anthropic.claude-3-sonnet-20240229-v1:0", defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"max_tokens":     4096,
		"stop_sequences": []string{},
		"temperature":    0.0,
		"top_p":          1.0,
		"top_k":          50,
	}, out)
}

func TestAdapt_TitanRenamesFields(t *testing.T) {
	out, err := Adapt("amazon.titan-text-express-v1", defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 4096, out["maxTokenCount"])
	assert.Equal(t, []string{}, out["stopSequences"])
	assert.Equal(t, 1.0, out["topP"])
	assert.NotContains(t, out, "top_k")
	assert.NotContains(t, out, "max_tokens")
}

func TestAdapt_MetaCeilingAppliedBeforeProjection(t *testing.T) {
	out, err := Adapt("meta.llama2-70b-chat-v1", defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2048, out["max_gen_len"])
	assert.NotContains(t, out, "stop_sequences")
}

func TestAdapt_MetaSmallerMaxTokensKept(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxTokens = 512

	out, err := Adapt("meta.llama3-8b-instruct-v1:0", cfg)
	require.NoError(t, err)
	assert.Equal(t, 512, out["max_gen_len"])
}

func TestAdapt_CohereShortNames(t *testing.T) {
	out, err := Adapt("cohere.command-text-v14", defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 1.0, out["p"])
	assert.Equal(t, 50, out["k"])
	assert.NotContains(t, out, "top_p")
}

func TestAdapt_UnknownVendor(t *testing.T) {
	_, err := Adapt("acme.frontier-v1", defaultConfig())
	assert.ErrorIs(t, err, domain.ErrUnsupportedModel)

	_, err = Adapt("not-a-model-id", defaultConfig())
	assert.ErrorIs(t, err, domain.ErrUnsupportedModel)
}

func TestCheckRegistry(t *testing.T) {
	assert.NoError(t, CheckRegistry())
}

func TestContextWindow(t *testing.T) {
	n, err := ContextWindow("anthropic.claude-v2")
	require.NoError(t, err)
	assert.Equal(t, 100_000, n)

	_, err = ContextWindow("anthropic.claude-99")
	assert.ErrorIs(t, err, domain.ErrUnsupportedModel)
}
