package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manasdutta04/layr/llm"
)

func TestCreateProvider(t *testing.T) {
	tests := []struct {
		typeName string
		want     llm.ProviderType
	}{
		{"groq", llm.ProviderGroq},
		{"deepseek", llm.ProviderDeepseek},
		{"o3", llm.ProviderO3},
		{"grok", llm.ProviderGrok},
		{"kimi", llm.ProviderKimi},
		{"ollama", llm.ProviderOllama},
		// Matching is case-insensitive and tolerates whitespace.
		{"Groq", llm.ProviderGroq},
		{"DEEPSEEK", llm.ProviderDeepseek},
		{" ollama ", llm.ProviderOllama},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			p, err := CreateProvider(tt.typeName, llm.Settings{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Type())
		})
	}
}

func TestCreateProviderUnknown(t *testing.T) {
	_, err := CreateProvider("GPT-9000", llm.Settings{})
	require.Error(t, err)
	assert.True(t, llm.IsUnsupportedProvider(err))
	// The caller's exact spelling survives into the message.
	assert.Contains(t, err.Error(), `"GPT-9000"`)
}

func TestSupportedProviders(t *testing.T) {
	supported := SupportedProviders()
	assert.Len(t, supported, 6)
	for _, ptype := range supported {
		p, err := CreateProvider(string(ptype), llm.Settings{})
		require.NoError(t, err)
		assert.Equal(t, ptype, p.Type())
		assert.NotEmpty(t, p.Name())
		assert.NotEmpty(t, p.SupportedModels())
	}
}
