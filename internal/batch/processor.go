// Package batch reads question files used to answer many questions at
// once, optionally checking each reply against an expected answer.
package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one question with an optional expected answer
type Entry struct {
	Question string
	Expected string
}

// HasExpectation reports whether the reply should be checked
func (e Entry) HasExpectation() bool {
	return e.Expected != ""
}

// ReadBatchFile reads questions from a file, one per line.
// Supports formats:
// - Question only: "hello"
// - With expected reply: "hello = Hi there! How can I assist you?"
// The separator is an '=' with whitespace (or the line start or end) on both
// sides, so "what is 1+1=2" is a question without an expected reply.
// Blank lines, lines starting with '#' and lines without a question are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []Entry
	for _, line := range splitLines(string(content)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		question, expected, found := cutExpectation(line)
		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}
		if found {
			expected = strings.TrimSpace(expected)
		}
		entries = append(entries, Entry{Question: question, Expected: expected})
	}

	return entries, nil
}

// cutExpectation splits line at the first free-standing '='
func cutExpectation(line string) (question, expected string, found bool) {
	isSpace := func(i int) bool {
		return i < 0 || i >= len(line) || line[i] == ' ' || line[i] == '\t'
	}
	for i := 0; i < len(line); i++ {
		if line[i] == '=' && isSpace(i-1) && isSpace(i+1) {
			return line[:i], line[i+1:], true
		}
	}
	return line, "", false
}

// splitLines splits a string by newlines, dropping carriage returns
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r", ""), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
