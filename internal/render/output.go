package render

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/tidwall/pretty"
)

// Terminal renders markdown for an ANSI terminal, wrapping at width.
func Terminal(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// JSON encodes v as indented JSON.
func JSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return pretty.Pretty(data), nil
}
