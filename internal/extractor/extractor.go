// Package extractor flattens editor block documents into plain text for
// prompt building.
package extractor

import (
	"encoding/json"
	"strings"

	"quizcraft/internal/domain"
)

// block mirrors one node of the editor document. Content is either a plain
// string or an array of inline spans, so it stays raw until inspected.
type block struct {
	Type     string          `json:"type"`
	Content  json.RawMessage `json:"content"`
	Children []block         `json:"children"`
}

type inlineSpan struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// BlockExtractor implements domain.TextExtractor for the editor's block
// document format.
type BlockExtractor struct{}

func NewBlockExtractor() *BlockExtractor {
	return &BlockExtractor{}
}

// Extract returns the document's visible text, one line per block. A body
// that is not valid block JSON is treated as already-plain text.
func (e *BlockExtractor) Extract(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "", nil
	}

	var blocks []block
	if err := json.Unmarshal([]byte(trimmed), &blocks); err != nil {
		return trimmed, nil
	}

	var lines []string
	for _, b := range blocks {
		collectText(b, &lines)
	}
	return strings.Join(lines, "\n"), nil
}

func collectText(b block, lines *[]string) {
	if text := blockText(b); text != "" {
		*lines = append(*lines, text)
	}
	for _, child := range b.Children {
		collectText(child, lines)
	}
}

func blockText(b block) string {
	if len(b.Content) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(b.Content, &plain); err == nil {
		return strings.TrimSpace(plain)
	}

	var spans []inlineSpan
	if err := json.Unmarshal(b.Content, &spans); err != nil {
		return ""
	}
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return strings.TrimSpace(sb.String())
}

var _ domain.TextExtractor = (*BlockExtractor)(nil)
