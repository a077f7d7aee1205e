package model

import (
	"log"
	"strings"
	"unicode/utf8"
)

// charsPerToken approximates each family's tokenizer density. The estimate
// does not need to match the provider tokenizer exactly; it must be a
// deterministic, reasonable upper-bound proxy for budgeting.
var charsPerToken = map[Vendor]float64{
	VendorAnthropic: 3.5,
	VendorMistral:   3.6,
	VendorMeta:      3.6,
	VendorAmazon:    4.0,
	VendorCohere:    4.0,
	VendorAI21:      3.8,
}

const defaultCharsPerToken = 3.5

// EstimateTokens estimates the token count of text for a model family.
// Unknown vendors fall back to the default estimator with a warning;
// estimation is approximate and must never block the pipeline.
func EstimateTokens(text string, modelID string) int {
	ratio := defaultCharsPerToken
	vendor, err := VendorOf(modelID)
	if err != nil {
		log.Printf("model.EstimateTokens: unknown vendor for %q, using default tokenizer", modelID)
	} else {
		ratio = charsPerToken[vendor]
	}

	chars := utf8.RuneCountInString(text)
	if chars == 0 {
		return 0
	}

	tokens := int(float64(chars)/ratio) + 1

	// Whitespace-heavy text tokenizes closer to one token per word.
	if words := len(strings.Fields(text)); words > tokens {
		tokens = words
	}
	return tokens
}
