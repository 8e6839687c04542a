package internal

import "testing"

func TestHashText(t *testing.T) {
	a := HashText("hello", "alloy")
	b := HashText("hello", "alloy")
	if a != b {
		t.Errorf("HashText() not stable: %s != %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("HashText() length = %d, want 32", len(a))
	}
	if HashText("hello", "alloy") == HashText("helloalloy") {
		t.Error("HashText() should separate parts")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"responses", "responses"},
		{"my file.json", "my_file_json"},
		{"a-b_c", "a-b_c"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
