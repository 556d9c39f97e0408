package conversation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// exportShape identifies one of the recognized structured-export layouts.
type exportShape int

const (
	shapeUnknown     exportShape = iota
	shapeNodeArray               // array of items, each a mapping tree or a role/content pair
	shapeMessageList             // object with a top-level "messages" array
	shapeMapping                 // object with a top-level "mapping" tree
)

type exportNode struct {
	Message *struct {
		Author *struct {
			Role string `json:"role"`
		} `json:"author"`
		Content *struct {
			Parts []string `json:"parts"`
		} `json:"content"`
	} `json:"message"`
}

type exportItem struct {
	Mapping map[string]exportNode `json:"mapping"`
	Role    string                `json:"role"`
	Content json.RawMessage       `json:"content"`
}

type exportDoc struct {
	Messages []exportItem          `json:"messages"`
	Mapping  map[string]exportNode `json:"mapping"`
}

// ExtractFromJSON converts a structured conversation export into plain
// "ROLE: content" text. Exports arrive in one of four layouts (mapping
// trees as produced by ChatGPT data exports, flat role/content arrays, a
// messages wrapper, or a bare mapping object); anything else is
// pretty-printed so the caller can still work with the raw data.
func ExtractFromJSON(data []byte) (string, error) {
	var lines []string

	switch detectShape(data) {
	case shapeNodeArray:
		var items []exportItem
		if err := json.Unmarshal(data, &items); err == nil {
			for _, item := range items {
				if len(item.Mapping) > 0 {
					lines = append(lines, mappingLines(item.Mapping)...)
				} else if l, ok := itemLine(item); ok {
					lines = append(lines, l)
				}
			}
		}
	case shapeMessageList:
		var doc exportDoc
		if err := json.Unmarshal(data, &doc); err == nil {
			for _, item := range doc.Messages {
				if l, ok := itemLine(item); ok {
					lines = append(lines, l)
				}
			}
		}
	case shapeMapping:
		var doc exportDoc
		if err := json.Unmarshal(data, &doc); err == nil {
			lines = mappingLines(doc.Mapping)
		}
	}

	if len(lines) > 0 {
		return strings.Join(lines, "\n\n"), nil
	}
	return prettyJSON(data)
}

func detectShape(data []byte) exportShape {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return shapeNodeArray
	}
	var doc exportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return shapeUnknown
	}
	if len(doc.Messages) > 0 {
		return shapeMessageList
	}
	if len(doc.Mapping) > 0 {
		return shapeMapping
	}
	return shapeUnknown
}

// mappingLines walks a mapping tree in arbitrary map order, skipping nodes
// without content parts.
func mappingLines(m map[string]exportNode) []string {
	var lines []string
	for _, node := range m {
		msg := node.Message
		if msg == nil || msg.Content == nil || msg.Content.Parts == nil {
			continue
		}
		role := "unknown"
		if msg.Author != nil && msg.Author.Role != "" {
			role = msg.Author.Role
		}
		content := strings.Join(msg.Content.Parts, "\n")
		if strings.TrimSpace(content) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", NormalizeRole(role), content))
	}
	return lines
}

// itemLine renders a role/content pair. String content is used as-is;
// structured content keeps its JSON encoding as text.
func itemLine(item exportItem) (string, bool) {
	if item.Role == "" || len(item.Content) == 0 || string(item.Content) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(item.Content, &s); err != nil {
		s = string(item.Content)
	}
	return fmt.Sprintf("%s: %s", NormalizeRole(item.Role), s), true
}

func prettyJSON(data []byte) (string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("parse export: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render export: %w", err)
	}
	return string(out), nil
}
