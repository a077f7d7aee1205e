package model

import (
	"docsift/internal/domain"
)

// Neutral parameter field names used as mapping keys.
const (
	fieldMaxTokens     = "max_tokens"
	fieldStopSequences = "stop_sequences"
	fieldTemperature   = "temperature"
	fieldTopP          = "top_p"
	fieldTopK          = "top_k"
)

// metaMaxTokens is the tighter generation ceiling enforced for Meta models.
const metaMaxTokens = 2048

// paramMappings projects neutral field names to the names each vendor's
// invocation body expects. A field absent from a vendor's mapping is
// dropped during adaptation.
var paramMappings = map[Vendor]map[string]string{
	VendorAnthropic: {
		fieldMaxTokens:     "max_tokens",
		fieldStopSequences: "stop_sequences",
		fieldTemperature:   "temperature",
		fieldTopP:          "top_p",
		fieldTopK:          "top_k",
	},
	VendorAmazon: {
		fieldMaxTokens:     "maxTokenCount",
		fieldStopSequences: "stopSequences",
		fieldTemperature:   "temperature",
		fieldTopP:          "topP",
	},
	VendorMeta: {
		fieldMaxTokens:   "max_gen_len",
		fieldTemperature: "temperature",
		fieldTopP:        "top_p",
	},
	VendorCohere: {
		fieldMaxTokens:   "max_tokens",
		fieldTemperature: "temperature",
		fieldTopP:        "p",
		fieldTopK:        "k",
	},
	VendorMistral: {
		fieldMaxTokens:   "max_tokens",
		fieldTemperature: "temperature",
		fieldTopP:        "top_p",
		fieldTopK:        "top_k",
	},
	VendorAI21: {
		fieldMaxTokens:     "maxTokens",
		fieldStopSequences: "stopSequences",
		fieldTemperature:   "temperature",
		fieldTopP:          "topP",
		fieldTopK:          "topKReturn",
	},
}

// MappingFor returns the vendor's neutral-to-specific field name mapping.
func MappingFor(v Vendor) map[string]string {
	return paramMappings[v]
}

// Adapt projects a vendor-neutral generation config into the field names
// and subset a specific model family consumes. The Meta max-token ceiling
// is applied before projection.
func Adapt(modelID string, cfg domain.GenerationConfig) (map[string]any, error) {
	vendor, err := VendorOf(modelID)
	if err != nil {
		return nil, err
	}

	if vendor == VendorMeta && cfg.MaxTokens > metaMaxTokens {
		cfg.MaxTokens = metaMaxTokens
	}

	stop := cfg.StopSequences
	if stop == nil {
		stop = []string{}
	}

	neutral := map[string]any{
		fieldMaxTokens:     cfg.MaxTokens,
		fieldStopSequences: stop,
		fieldTemperature:   cfg.Temperature,
		fieldTopP:          cfg.TopP,
		fieldTopK:          cfg.TopK,
	}

	mapping := paramMappings[vendor]
	out := make(map[string]any, len(mapping))
	for neutralName, vendorName := range mapping {
		out[vendorName] = neutral[neutralName]
	}
	return out, nil
}
