package model

import (
	"fmt"
	"strings"

	"docsift/internal/domain"
)

// Vendor identifies a model family. The vendor is the prefix of the model
// identity before the first dot, e.g. "anthropic" in
// "anthropic.claude-3-sonnet-20240229-v1:0".
type Vendor string

const (
	VendorAnthropic Vendor = "anthropic"
	VendorAmazon    Vendor = "amazon"
	VendorMeta      Vendor = "meta"
	VendorCohere    Vendor = "cohere"
	VendorMistral   Vendor = "mistral"
	VendorAI21      Vendor = "ai21"
)

// VendorOf extracts the vendor prefix from a model identity. An unknown
// vendor is a configuration error, not a runtime recoverable one.
func VendorOf(modelID string) (Vendor, error) {
	prefix, _, found := strings.Cut(modelID, ".")
	if !found {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedModel, modelID)
	}
	v := Vendor(prefix)
	if _, ok := paramMappings[v]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedModel, modelID)
	}
	return v, nil
}

// contextWindows holds the maximum input token budget per supported model.
var contextWindows = map[string]int{
	"anthropic.claude-3-opus-20240229-v1:0":   200_000,
	"anthropic.claude-3-sonnet-20240229-v1:0": 200_000,
	"anthropic.claude-3-haiku-20240307-v1:0":  200_000,
	"anthropic.claude-v2:1":                   200_000,
	"anthropic.claude-v2":                     100_000,
	"anthropic.claude-instant-v1":             100_000,
	"mistral.mistral-large-2402-v1:0":         32_000,
	"mistral.mixtral-8x7b-instruct-v0:1":      32_000,
	"mistral.mistral-7b-instruct-v0:2":        32_000,
	"amazon.titan-text-premier-v1:0":          32_000,
	"amazon.titan-text-express-v1":            8_000,
	"amazon.titan-text-lite-v1":               4_000,
	"meta.llama3-70b-instruct-v1:0":           8_000,
	"meta.llama3-8b-instruct-v1:0":            8_000,
	"meta.llama2-70b-chat-v1":                 4_096,
	"meta.llama2-13b-chat-v1":                 4_096,
	"cohere.command-r-plus-v1:0":              128_000,
	"cohere.command-r-v1:0":                   128_000,
	"cohere.command-text-v14":                 4_000,
	"cohere.command-light-text-v14":           4_000,
	"ai21.j2-ultra-v1":                        8_191,
	"ai21.j2-mid-v1":                          8_191,
}

// ContextWindow returns the max context length for a model identity.
func ContextWindow(modelID string) (int, error) {
	n, ok := contextWindows[modelID]
	if !ok {
		return 0, fmt.Errorf("%w: no context window entry for %q", domain.ErrUnsupportedModel, modelID)
	}
	return n, nil
}

// SupportedModels returns the accepted model identities in no particular order.
func SupportedModels() []string {
	ids := make([]string, 0, len(contextWindows))
	for id := range contextWindows {
		ids = append(ids, id)
	}
	return ids
}

// IsSupported reports whether a model identity is accepted.
func IsSupported(modelID string) bool {
	_, ok := contextWindows[modelID]
	return ok
}

// CheckRegistry verifies the closed mapping tables at startup: every
// supported model identity must have both a context-window entry and a
// vendor parameter mapping.
func CheckRegistry() error {
	for id := range contextWindows {
		if _, err := VendorOf(id); err != nil {
			return fmt.Errorf("model registry: %w", err)
		}
	}
	for v := range paramMappings {
		found := false
		for id := range contextWindows {
			if strings.HasPrefix(id, string(v)+".") {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("model registry: vendor %q has a parameter mapping but no supported models", v)
		}
	}
	return nil
}
