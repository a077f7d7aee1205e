package bedrock

import (
	"encoding/json"
	"fmt"

	"docsift/internal/model"
	"docsift/internal/port"
	"docsift/internal/prompt"
)

const anthropicVersion = "bedrock-2023-05-31"

// encodeRequest builds the vendor-specific invocation body. Multimodal
// content blocks are only expressible in the Anthropic messages format.
func encodeRequest(input port.InvokeInput) ([]byte, error) {
	vendor, err := model.VendorOf(input.ModelID)
	if err != nil {
		return nil, err
	}

	if len(input.Content) > 0 && vendor != model.VendorAnthropic {
		return nil, fmt.Errorf("vendor %s does not accept image content blocks", vendor)
	}

	var body map[string]any
	switch vendor {
	case model.VendorAnthropic:
		content := input.Content
		if len(content) == 0 {
			content = []prompt.ContentBlock{{Type: "text", Text: input.Prompt}}
		}
		body = map[string]any{
			"anthropic_version": anthropicVersion,
			"messages": []map[string]any{
				{"role": "user", "content": content},
			},
		}
		if input.System != "" {
			body["system"] = input.System
		}
		for k, v := range input.Params {
			body[k] = v
		}

	case model.VendorAmazon:
		body = map[string]any{
			"inputText":            input.Prompt,
			"textGenerationConfig": input.Params,
		}

	default:
		// meta, cohere, mistral and ai21 all take a flat prompt plus the
		// renamed generation parameters at the top level.
		body = map[string]any{"prompt": input.Prompt}
		for k, v := range input.Params {
			body[k] = v
		}
	}

	return json.Marshal(body)
}

// decodeResponse extracts the completion text from the vendor-specific
// response body.
func decodeResponse(modelID string, body []byte) (string, error) {
	vendor, err := model.VendorOf(modelID)
	if err != nil {
		return "", err
	}

	switch vendor {
	case model.VendorAnthropic:
		var resp struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("unmarshaling response: %w", err)
		}
		for _, block := range resp.Content {
			if block.Type == "text" {
				return block.Text, nil
			}
		}
		return "", fmt.Errorf("no text block in response")

	case model.VendorAmazon:
		var resp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("unmarshaling response: %w", err)
		}
		if len(resp.Results) == 0 {
			return "", fmt.Errorf("empty results in response")
		}
		return resp.Results[0].OutputText, nil

	case model.VendorMeta:
		var resp struct {
			Generation string `json:"generation"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("unmarshaling response: %w", err)
		}
		return resp.Generation, nil

	case model.VendorCohere:
		var resp struct {
			Generations []struct {
				Text string `json:"text"`
			} `json:"generations"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("unmarshaling response: %w", err)
		}
		if len(resp.Generations) == 0 {
			return "", fmt.Errorf("empty generations in response")
		}
		return resp.Generations[0].Text, nil

	case model.VendorMistral:
		var resp struct {
			Outputs []struct {
				Text string `json:"text"`
			} `json:"outputs"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("unmarshaling response: %w", err)
		}
		if len(resp.Outputs) == 0 {
			return "", fmt.Errorf("empty outputs in response")
		}
		return resp.Outputs[0].Text, nil

	case model.VendorAI21:
		var resp struct {
			Completions []struct {
				Data struct {
					Text string `json:"text"`
				} `json:"data"`
			} `json:"completions"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("unmarshaling response: %w", err)
		}
		if len(resp.Completions) == 0 {
			return "", fmt.Errorf("empty completions in response")
		}
		return resp.Completions[0].Data.Text, nil
	}

	return "", fmt.Errorf("no response decoder for vendor %s", vendor)
}
