package responder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrFileNotFound is returned by LoadFile when the responses file does not exist
var ErrFileNotFound = errors.New("file not found")

// Responder looks a query up in the loaded table, then in the built-in
// table, and finally falls back to DefaultResponse.
type Responder struct {
	mu      sync.RWMutex
	loaded  Table
	builtin Table
	source  string
}

// New creates a responder with an empty loaded table
func New() *Responder {
	return &Responder{
		loaded:  Table{},
		builtin: Builtin(),
	}
}

// Respond returns the answer for query, matching case-insensitively
func (r *Responder) Respond(query string) string {
	key := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if answer, ok := r.loaded[key]; ok && answer != "" {
		return answer
	}
	if answer, ok := r.builtin[key]; ok {
		return answer
	}
	return DefaultResponse
}

// Replace swaps the loaded table wholesale
func (r *Responder) Replace(table Table) {
	next := make(Table, len(table))
	for question, answer := range table {
		next[strings.ToLower(question)] = answer
	}

	r.mu.Lock()
	r.loaded = next
	r.mu.Unlock()
}

// LoadFile replaces the loaded table with the contents of path. The
// current table is cleared before reading, so a failed load leaves it empty.
func (r *Responder) LoadFile(path string) (int, error) {
	r.mu.Lock()
	r.loaded = Table{}
	r.source = ""
	r.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return 0, fmt.Errorf("failed to read responses file: %w", err)
	}

	var table Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		table, err = ParseYAML(data)
	default:
		table, err = ParseJSON(data)
	}
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.loaded = table
	r.source = path
	r.mu.Unlock()

	return len(table), nil
}

// Len returns the number of entries in the loaded table
func (r *Responder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.loaded)
}

// Source returns the path of the last successfully loaded file
func (r *Responder) Source() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}
