package model

import "strings"

// GapMarker is inserted where the middle of a truncated document was
// removed, so the model is explicitly told a gap exists.
const GapMarker = "\n...\n"

// Multiplier sweep bounds for the iterative cut expansion.
const (
	sweepStart = 1.0
	sweepEnd   = 5.0
	sweepStep  = 0.1
)

// TruncateDocument shrinks an oversized document around its midpoint until
// it plus the prompt overhead fits under the model's context window,
// preserving head and tail.
//
// If the document already fits, it is returned unchanged. Otherwise the
// document is split into space-delimited words and a symmetric region
// around the midpoint is removed, scaled by a multiplier swept from 1.0 to
// 5.0 in steps of 0.1; the first candidate whose estimate drops below
// maxContext-promptTokens wins. If no multiplier satisfies the budget, the
// largest-cut candidate is returned: a defined degradation that the model
// provider may still reject.
func TruncateDocument(document string, totalTokens, promptTokens int, modelID string, maxContext int) string {
	if totalTokens <= maxContext {
		return document
	}

	words := strings.Split(document, " ")
	cut := (totalTokens - maxContext) / 2
	mid := len(words) / 2

	var truncated string
	for multiplier := sweepStart; multiplier < sweepEnd; multiplier += sweepStep {
		span := int(float64(cut) * multiplier)
		left, right := mid-span, mid+span
		if left < 0 {
			left = 0
		}
		if right > len(words) {
			right = len(words)
		}

		truncated = strings.Join(words[:left], " ") + GapMarker + strings.Join(words[right:], " ")
		if EstimateTokens(truncated, modelID) < maxContext-promptTokens {
			break
		}
	}
	return truncated
}
