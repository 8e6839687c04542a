package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Entry
		wantErr     bool
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "questions only",
			fileContent: `hello
how are you
bye`,
			want: []Entry{
				{Question: "hello"},
				{Question: "how are you"},
				{Question: "bye"},
			},
		},
		{
			name: "mixed format with comments",
			fileContent: `# greetings
hello = Hi there! How can I assist you?

  what is ai  
= orphan answer`,
			want: []Entry{
				{Question: "hello", Expected: "Hi there! How can I assist you?"},
				{Question: "what is ai"},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "hello\r\nbye = Goodbye! Have a nice day!\r\n",
			want: []Entry{
				{Question: "hello"},
				{Question: "bye", Expected: "Goodbye! Have a nice day!"},
			},
		},
		{
			name:        "multiple equals signs",
			fileContent: `what is 1+1 = 2 = two`,
			want: []Entry{
				{Question: "what is 1+1", Expected: "2 = two"},
			},
		},
		{
			name: "equals inside question",
			fileContent: `what is 1+1=2
x==y = equal
a = b=c
hello =`,
			want: []Entry{
				{Question: "what is 1+1=2"},
				{Question: "x==y", Expected: "equal"},
				{Question: "a", Expected: "b=c"},
				{Question: "hello"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temp file
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "test.txt")
			err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadBatchFile(tmpFile)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadBatchFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_FileNotFound(t *testing.T) {
	_, err := ReadBatchFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestEntryHasExpectation(t *testing.T) {
	if (Entry{Question: "hello"}).HasExpectation() {
		t.Error("entry without expected reply reports an expectation")
	}
	if !(Entry{Question: "hello", Expected: "Hi"}).HasExpectation() {
		t.Error("entry with expected reply reports none")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "unix line endings",
			input: "line1\nline2\nline3",
			want:  []string{"line1", "line2", "line3"},
		},
		{
			name:  "windows line endings",
			input: "line1\r\nline2\r\nline3",
			want:  []string{"line1", "line2", "line3"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "trailing newline",
			input: "line1\nline2\n",
			want:  []string{"line1", "line2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLines() = %v, want %v", got, tt.want)
			}
		})
	}
}
