package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/lmdpipe/core"
)

// JSONRenderer exports the extracted issue model as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Export marshals the issue.
func (r *JSONRenderer) Export(is *core.Issue) ([]byte, error) {
	data, err := json.MarshalIndent(is, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
