package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"docsift/internal/config"
	"docsift/internal/domain"
	"docsift/internal/llmjson"
	"docsift/internal/model"
	"docsift/internal/port"
	"docsift/internal/prompt"
)

// ExtractInput is the DTO for attribute extraction requests. Document
// carries inline text; when it is empty the document is resolved from
// FileKey instead.
type ExtractInput struct {
	Document         string
	FileKey          string
	OriginalFileName string
	Attributes       []domain.AttributeSpec
	FewShots         []domain.FewShotExample
	Instructions     string
	Model            domain.ModelParams
}

// SummarizeInput is the DTO for claim summary requests. Fragments are the
// per-document attribute JSON payloads produced by earlier extractions.
type SummarizeInput struct {
	Fragments []string
	Model     domain.ModelParams
}

// ExtractService defines the LLM extraction contract.
type ExtractService interface {
	Extract(ctx context.Context, input ExtractInput) (*domain.ExtractionResult, error)
	ExtractImage(ctx context.Context, input ExtractInput) (*domain.ExtractionResult, error)
	Summarize(ctx context.Context, input SummarizeInput) (*domain.ExtractionResult, error)
}

// Fixed sampling overrides for image-bearing requests.
var multimodalStopWords = []string{"\n\nuser:"}

const multimodalTopP = 0.95

type extractService struct {
	invoker port.ModelInvoker
	storage port.ObjectStorage
	s3cfg   *config.S3Config
	gen     *config.GenerationConfig
	cfg     *config.ExtractConfig
}

// NewExtractService creates a new ExtractService implementation.
func NewExtractService(
	invoker port.ModelInvoker,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
	gen *config.GenerationConfig,
	cfg *config.ExtractConfig,
) ExtractService {
	return &extractService{
		invoker: invoker,
		storage: storage,
		s3cfg:   s3cfg,
		gen:     gen,
		cfg:     cfg,
	}
}

func (s *extractService) Extract(ctx context.Context, input ExtractInput) (*domain.ExtractionResult, error) {
	modelID, err := s.resolveModel(input.Model)
	if err != nil {
		return nil, err
	}
	if input.Document == "" && input.FileKey == "" {
		return nil, domain.ErrMissingStorageKey
	}

	docText := input.Document
	if docText == "" {
		data, err := s.storage.Download(ctx, s.s3cfg.Bucket, input.FileKey)
		if err != nil {
			return nil, fmt.Errorf("downloading document %s: %w", input.FileKey, err)
		}
		docText = string(data)
	}
	if strings.TrimSpace(docText) == "" {
		return nil, domain.ErrEmptyDocument
	}

	tmpl, err := prompt.Build(domain.PromptKindExtraction, len(input.FewShots), input.Instructions)
	if err != nil {
		return nil, err
	}
	values := s.promptValues(input)

	// Estimate the prompt overhead with an empty document slot, then
	// shrink the document to fit the remaining context budget.
	values["document"] = ""
	skeleton, err := tmpl.Render(values)
	if err != nil {
		return nil, err
	}
	maxContext, err := model.ContextWindow(modelID)
	if err != nil {
		return nil, err
	}
	promptTokens := model.EstimateTokens(skeleton, modelID)
	totalTokens := promptTokens + model.EstimateTokens(docText, modelID)
	if totalTokens > maxContext {
		log.Printf("extractService.Extract: document %s exceeds context window of %s (%d > %d tokens), truncating",
			input.FileKey, modelID, totalTokens, maxContext)
		docText = model.TruncateDocument(docText, totalTokens, promptTokens, modelID, maxContext)
	}

	values["document"] = docText
	rendered, err := tmpl.Render(values)
	if err != nil {
		return nil, err
	}

	params, err := model.Adapt(modelID, s.generation(input.Model, nil, 0))
	if err != nil {
		return nil, err
	}

	log.Printf("extractService.Extract: invoking %s for %s (%d attributes, %d few-shots)",
		modelID, input.FileKey, len(input.Attributes), len(input.FewShots))
	raw, err := s.invoker.Invoke(ctx, port.InvokeInput{
		ModelID: modelID,
		Params:  params,
		Prompt:  rendered,
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, raw, input.FileKey, input.OriginalFileName)
}

func (s *extractService) ExtractImage(ctx context.Context, input ExtractInput) (*domain.ExtractionResult, error) {
	modelID, err := s.resolveModel(input.Model)
	if err != nil {
		return nil, err
	}
	if input.FileKey == "" {
		return nil, domain.ErrMissingStorageKey
	}

	pages, err := s.loadPages(ctx, input.FileKey)
	if err != nil {
		return nil, err
	}

	tmpl, err := prompt.Build(domain.PromptKindMultimodal, len(input.FewShots), input.Instructions)
	if err != nil {
		return nil, err
	}
	rendered, err := tmpl.Render(s.promptValues(input))
	if err != nil {
		return nil, err
	}

	content, err := prompt.PackageContent(rendered, pages, s.cfg.MaxPages)
	if err != nil {
		return nil, err
	}

	params, err := model.Adapt(modelID, s.generation(input.Model, multimodalStopWords, multimodalTopP))
	if err != nil {
		return nil, err
	}

	log.Printf("extractService.ExtractImage: invoking %s for %s (%d pages)",
		modelID, input.FileKey, len(pages))
	raw, err := s.invoker.Invoke(ctx, port.InvokeInput{
		ModelID: modelID,
		Params:  params,
		System:  prompt.SystemPrompt,
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, raw, input.FileKey, input.OriginalFileName)
}

func (s *extractService) Summarize(ctx context.Context, input SummarizeInput) (*domain.ExtractionResult, error) {
	modelID, err := s.resolveModel(input.Model)
	if err != nil {
		return nil, err
	}
	if len(input.Fragments) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	tmpl := prompt.BuildSummary(len(input.Fragments))
	values := make(map[string]string, len(input.Fragments))
	for i, fragment := range input.Fragments {
		values[prompt.FragmentVar(i)] = fragment
	}
	rendered, err := tmpl.Render(values)
	if err != nil {
		return nil, err
	}

	params, err := model.Adapt(modelID, s.generation(input.Model, nil, 0))
	if err != nil {
		return nil, err
	}

	log.Printf("extractService.Summarize: invoking %s over %d fragments", modelID, len(input.Fragments))
	raw, err := s.invoker.Invoke(ctx, port.InvokeInput{
		ModelID: modelID,
		Params:  params,
		Prompt:  rendered,
	})
	if err != nil {
		return nil, err
	}

	answer, ok := llmjson.ParseOrEmpty(raw)
	if !ok {
		log.Printf("extractService.Summarize: response could not be parsed, returning raw answer only")
	}
	return &domain.ExtractionResult{Answer: answer, RawAnswer: raw}, nil
}

// finish parses the model response, persists the attributes artifact, and
// wraps the result envelope. A parse failure is not an error: the raw
// answer is still persisted for audit.
func (s *extractService) finish(ctx context.Context, raw, fileKey, originalName string) (*domain.ExtractionResult, error) {
	answer, ok := llmjson.ParseOrEmpty(raw)
	if !ok {
		log.Printf("extractService: response for %s could not be parsed, persisting raw answer only", fileKey)
	}

	result := &domain.ExtractionResult{
		Answer:           answer,
		RawAnswer:        raw,
		FileKey:          fileKey,
		OriginalFileName: originalName,
	}
	if fileKey == "" {
		// Inline documents have no storage identity, so there is nothing
		// to persist the artifact under.
		return result, nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding extraction result: %w", err)
	}
	key := attributesKey(fileKey)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(payload),
		ContentType: "application/json",
		Size:        int64(len(payload)),
	}); err != nil {
		return nil, fmt.Errorf("persisting attributes to %s: %w", key, err)
	}
	log.Printf("extractService: persisted attributes to %s", key)

	return result, nil
}

// loadPages returns the document's page images. Image uploads are a single
// page; PDF uploads expect pre-rendered page JPEGs under "<key>/pages/",
// listed in lexical order.
func (s *extractService) loadPages(ctx context.Context, fileKey string) ([][]byte, error) {
	switch strings.ToLower(filepath.Ext(fileKey)) {
	case ".jpg", ".jpeg", ".png":
		page, err := s.storage.Download(ctx, s.s3cfg.Bucket, fileKey)
		if err != nil {
			return nil, fmt.Errorf("downloading page image %s: %w", fileKey, err)
		}
		return [][]byte{page}, nil
	case ".pdf":
		prefix := strings.TrimSuffix(fileKey, filepath.Ext(fileKey)) + "/pages/"
		keys, err := s.storage.List(ctx, s.s3cfg.Bucket, prefix)
		if err != nil {
			return nil, fmt.Errorf("listing pages under %s: %w", prefix, err)
		}
		sort.Strings(keys)
		if len(keys) > s.cfg.MaxPages {
			keys = keys[:s.cfg.MaxPages]
		}

		pages := make([][]byte, 0, len(keys))
		for _, key := range keys {
			page, err := s.storage.Download(ctx, s.s3cfg.Bucket, key)
			if err != nil {
				return nil, fmt.Errorf("downloading page image %s: %w", key, err)
			}
			pages = append(pages, page)
		}
		if len(pages) == 0 {
			return nil, domain.ErrNoPages
		}
		return pages, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, filepath.Ext(fileKey))
	}
}

// resolveModel applies the default model and validates support.
func (s *extractService) resolveModel(params domain.ModelParams) (string, error) {
	modelID := params.ModelID
	if modelID == "" {
		modelID = s.cfg.DefaultModel
	}
	if !model.IsSupported(modelID) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedModel, modelID)
	}
	return modelID, nil
}

// generation merges configured defaults with per-request overrides.
// stopWords and topP are fixed overrides for the multimodal path; zero
// values leave the defaults in place.
func (s *extractService) generation(params domain.ModelParams, stopWords []string, topP float64) domain.GenerationConfig {
	cfg := domain.GenerationConfig{
		Temperature:   params.Temperature,
		TopP:          s.gen.TopP,
		TopK:          s.gen.TopK,
		MaxTokens:     s.gen.MaxTokens,
		StopSequences: s.gen.StopWords,
	}
	if params.AnswerLength > 0 {
		cfg.MaxTokens = params.AnswerLength
	} else if stopWords != nil {
		cfg.MaxTokens = s.cfg.AnswerLength
	}
	if stopWords != nil {
		cfg.StopSequences = stopWords
	}
	if topP > 0 {
		cfg.TopP = topP
	}
	return cfg
}

func (s *extractService) promptValues(input ExtractInput) map[string]string {
	values := prompt.FewShotValues(input.FewShots)
	values["attributes"] = prompt.FormatAttributes(input.Attributes)
	if strings.TrimSpace(input.Instructions) != "" {
		values["instructions"] = input.Instructions
	}
	return values
}
