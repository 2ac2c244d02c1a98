package providers

import (
	"github.com/manasdutta04/layr/llm"
)

// CreateProvider constructs the adapter matching typeName. Matching is
// case-insensitive; the caller's exact spelling is preserved in the
// error for unknown types.
func CreateProvider(typeName string, cfg llm.Settings) (llm.Provider, error) {
	ptype, err := llm.ParseProviderType(typeName)
	if err != nil {
		return nil, err
	}
	switch ptype {
	case llm.ProviderGroq:
		return NewGroq(cfg), nil
	case llm.ProviderDeepseek:
		return NewDeepseek(cfg), nil
	case llm.ProviderO3:
		return NewO3(cfg), nil
	case llm.ProviderGrok:
		return NewGrok(cfg), nil
	case llm.ProviderKimi:
		return NewKimi(cfg), nil
	default:
		return NewOllama(cfg), nil
	}
}

// SupportedProviders lists every provider type the factory can build.
func SupportedProviders() []llm.ProviderType {
	return []llm.ProviderType{
		llm.ProviderGroq,
		llm.ProviderDeepseek,
		llm.ProviderO3,
		llm.ProviderGrok,
		llm.ProviderKimi,
		llm.ProviderOllama,
	}
}
