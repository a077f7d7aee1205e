package domain

// AttributeType hints at the expected shape of an extracted value.
type AttributeType string

const (
	AttributeTypeAuto      AttributeType = "auto"
	AttributeTypeCharacter AttributeType = "character"
	AttributeTypeNumber    AttributeType = "number"
	AttributeTypeTrueFalse AttributeType = "true_false"
)

// ValidAttributeTypes lists the accepted attribute type hints.
var ValidAttributeTypes = map[AttributeType]bool{
	AttributeTypeAuto:      true,
	AttributeTypeCharacter: true,
	AttributeTypeNumber:    true,
	AttributeTypeTrueFalse: true,
}

// PromptKind selects the prompt template family.
type PromptKind string

const (
	// PromptKindExtraction is the generic named-attribute extraction template
	// for text documents.
	PromptKindExtraction PromptKind = "extraction"
	// PromptKindMultimodal is the extraction template variant whose header
	// frames the document as a collection of page images.
	PromptKindMultimodal PromptKind = "multimodal"
	// PromptKindSummary is the claim-summary template consumed by the
	// aggregation stage over per-document JSON fragments.
	PromptKindSummary PromptKind = "summary"
)

// Storage key prefixes for pipeline artifacts.
const (
	PrefixOriginals   = "originals"
	PrefixProcessed   = "processed"
	PrefixAttributes  = "attributes"
	PrefixTranscripts = "transcripts"
)
