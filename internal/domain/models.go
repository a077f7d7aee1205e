package domain

// GenerationConfig holds vendor-neutral inference parameters. It is built
// per request from caller input merged with configured defaults and passed
// by value through the pipeline, so concurrent requests never observe each
// other's overrides.
type GenerationConfig struct {
	Temperature   float64
	TopP          float64
	TopK          int
	MaxTokens     int
	StopSequences []string
}

// AttributeSpec describes a single attribute the model should extract.
type AttributeSpec struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        AttributeType `json:"type,omitempty"`
}

// FewShotExample is an input/output demonstration pair included in the
// prompt. Ordering is preserved and directly controls prompt ordering.
type FewShotExample struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// ModelParams carries the caller-selected model and sampling overrides.
type ModelParams struct {
	ModelID      string  `json:"model_id"`
	Temperature  float64 `json:"temperature"`
	AnswerLength int     `json:"answer_length,omitempty"`
}

// ExtractionResult is the envelope returned for every extraction call.
// Answer may be empty when the model response could not be repaired into
// a structure; RawAnswer always carries the verbatim model text for audit.
type ExtractionResult struct {
	Answer           map[string]any `json:"answer"`
	RawAnswer        string         `json:"raw_answer"`
	FileKey          string         `json:"file_key"`
	OriginalFileName string         `json:"original_file_name"`
}

// IngestionResult is the envelope returned by the OCR and office ingestion
// stages.
type IngestionResult struct {
	FileKey          string   `json:"file_key"`
	CSVTables        []string `json:"csv_tables"`
	OriginalFileName string   `json:"original_file_name"`
	Content          string   `json:"content"`
}

// TranscriptionResult is the envelope returned by the audio ingestion stage.
type TranscriptionResult struct {
	JobName        string `json:"job_name"`
	OutputLocation string `json:"output_location"`
	Content        string `json:"content"`
}
