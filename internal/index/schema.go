package index

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema is the catalog's contract for index records. Every emitted
// record is validated against it before being written.
func recordSchema() map[string]any {
	str := map[string]any{"type": "string"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"paper_ID":     str,
			"access":       map[string]any{"const": "private"},
			"paper_access": map[string]any{"const": "private"},
			"paper_title":  str,
			"authors": map[string]any{
				"type":  "array",
				"items": str,
			},
			"pdf_id":   str,
			"pdf_path": str,
			"year":     map[string]any{"type": []any{"integer", "null"}},
			"journal":  str,
			"figures": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"figure_ID":  str,
						"caption":    str,
						"image_path": str,
					},
					"required":             []any{"figure_ID", "caption", "image_path"},
					"additionalProperties": false,
				},
			},
			"citation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"APA": str,
				},
				"required":             []any{"APA"},
				"additionalProperties": false,
			},
		},
		"required": []any{
			"paper_ID", "access", "paper_access", "paper_title", "authors",
			"pdf_id", "pdf_path", "year", "journal", "figures", "citation",
		},
		"additionalProperties": false,
	}
}

// validateRecordJSON validates serialized record bytes against recordSchema.
func validateRecordJSON(data []byte) error {
	b, err := json.Marshal(recordSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match catalog schema: %w", err)
	}
	return nil
}
