package responder

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultResponse is returned when no table knows the query
const DefaultResponse = "I'm sorry, I didn't quite understand that. Please try rephrasing."

// Table maps a lowercased question to its answer
type Table map[string]string

// Builtin returns a fresh copy of the built-in table
func Builtin() Table {
	return Table{
		"hello":       "Hi there! How can I assist you?",
		"how are you": "I'm just a chatbot, but I'm here to help!",
		"what is ai":  "AI stands for Artificial Intelligence, enabling machines to mimic human intelligence.",
		"bye":         "Goodbye! Have a nice day!",
	}
}

// Keys of a responses file:
//
//	{"questions_and_answers": [{"You": "question", "Chatbot": "answer"}]}
//
// Keys are matched exactly in both JSON and YAML.
const (
	listKey     = "questions_and_answers"
	questionKey = "You"
	answerKey   = "Chatbot"
)

// tableFromDocument converts a decoded responses document into a lookup
// table. A missing list yields an empty table. Entries with an empty or
// missing question or answer are skipped and later duplicates win.
func tableFromDocument(doc map[string]any) (Table, error) {
	raw, ok := doc[listKey]
	if !ok {
		return Table{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a list", listKey)
	}

	table := make(Table, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s entry %d must be an object", listKey, i+1)
		}
		question, err := stringField(entry, questionKey, i)
		if err != nil {
			return nil, err
		}
		answer, err := stringField(entry, answerKey, i)
		if err != nil {
			return nil, err
		}
		if question == "" || answer == "" {
			continue
		}
		table[strings.ToLower(question)] = answer
	}
	return table, nil
}

func stringField(entry map[string]any, key string, index int) (string, error) {
	v, ok := entry[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s entry %d: %q must be a string", listKey, index+1, key)
	}
	return s, nil
}

// ParseJSON decodes a JSON responses file
func ParseJSON(data []byte) (Table, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("invalid JSON: top-level value must be an object")
	}
	table, err := tableFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return table, nil
}

// ParseYAML decodes a YAML responses file using the same keys as JSON
func ParseYAML(data []byte) (Table, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("invalid YAML: document must be a mapping")
	}
	table, err := tableFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return table, nil
}
