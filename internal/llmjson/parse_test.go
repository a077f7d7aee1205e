package llmjson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DelimitedJSONInProse(t *testing.T) {
	raw := "<thinking>The order number appears in the first sentence.</thinking>" +
		"<json>{\"order_id\": \"754263\"}</json>"

	got, err := ParseAttributes(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"order_id": "754263"}, got)
}

func TestParse_RoundTrip(t *testing.T) {
	values := []map[string]any{
		{"name": "Nikita Schulz", "complaint": true, "score": 0.5},
		{"items": []any{"a", "b", "c"}, "count": 3.0},
		{"nested": map[string]any{"deep": map[string]any{"leaf": nil}}},
	}
	for _, v := range values {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		raw := "Sure, here is the result:\n<json>" + string(b) + "</json>\nLet me know if you need more."

		got, parseErr := ParseAttributes(raw)
		require.NoError(t, parseErr)
		assert.Equal(t, v, got)
	}
}

func TestParse_MissingDelimiters(t *testing.T) {
	got, err := ParseAttributes(`{"a": 1, "b": [2, 3]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0, "b": []any{2.0, 3.0}}, got)
}

func TestParse_UnterminatedCloseTag(t *testing.T) {
	got, err := ParseAttributes(`<json>{"a": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "x"}, got)
}

func TestParse_PythonLiteralNotation(t *testing.T) {
	got, err := ParseAttributes(`{'name': 'Alice', 'active': True, 'deleted': False, 'notes': None}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":    "Alice",
		"active":  true,
		"deleted": false,
		"notes":   nil,
	}, got)
}

func TestParse_TrailingComma(t *testing.T) {
	raw := `<json>
{
    "customer_name": "Nikita Schulz",
    "shipment_delay_complaint": true,
    "urgency_score": 0.5,
}
</json>`
	got, err := ParseAttributes(raw)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got["urgency_score"])
	assert.Len(t, got, 3)
}

func TestParse_DoubledBracesFromTemplateEscaping(t *testing.T) {
	got, err := ParseAttributes(`{{"a": "b"}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "b"}, got)
}

func TestParse_MissingClosingBrace(t *testing.T) {
	got, err := ParseAttributes(`{"a": "b"`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "b"}, got)
}

func TestParse_BlankLineSeparatedRunsDoNotThrow(t *testing.T) {
	got, ok := ParseOrEmpty("customer_name: Alice\n\nscore: 0.5")
	assert.False(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParse_BlankLinesBetweenPairsRepaired(t *testing.T) {
	got, err := ParseAttributes("{\"a\": 1\n\n\"b\": 2}")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0, "b": 2.0}, got)
}

func TestParse_DuplicateKeysLastWriteWins(t *testing.T) {
	got, err := ParseAttributes(`{"a": "first", "a": "second"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "second"}, got)
}

func TestParse_EscapesAndUnicode(t *testing.T) {
	got, err := ParseAttributes(`{"a": "line\nbreak", "b": "é", "c": "tab\there"}`)
	require.NoError(t, err)
	assert.Equal(t, "line\nbreak", got["a"])
	assert.Equal(t, "é", got["b"])
}

func TestParse_GarbageDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{
		"no structure here at all",
		"{]",
	} {
		got, ok := ParseOrEmpty(raw)
		assert.False(t, ok, raw)
		assert.Empty(t, got, raw)
	}
}

func TestParse_EmptyInputRepairsToEmptyMapping(t *testing.T) {
	for _, raw := range []string{"", "<json></json>"} {
		got, ok := ParseOrEmpty(raw)
		assert.True(t, ok, raw)
		assert.Empty(t, got, raw)
	}
}

func TestParseOrEmpty_Success(t *testing.T) {
	got, ok := ParseOrEmpty(`<json>{"k": "v"}</json>`)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"k": "v"}, got)
}
