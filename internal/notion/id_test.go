package notion

import (
	"errors"
	"testing"
)

func TestParseDatabaseID(t *testing.T) {
	const want = "0123456789abcdef0123456789abcdef"

	tests := []struct {
		name  string
		input string
	}{
		{"bare", "0123456789abcdef0123456789abcdef"},
		{"upper case", "0123456789ABCDEF0123456789ABCDEF"},
		{"dashed", "01234567-89ab-cdef-0123-456789abcdef"},
		{"padded", "  0123456789abcdef0123456789abcdef\n"},
		{"url", "https://www.notion.so/myspace/0123456789abcdef0123456789abcdef?v=fedcba9876543210fedcba9876543210"},
		{"url with title", "https://www.notion.so/myspace/Reading-List-0123456789abcdef0123456789abcdef"},
		{"url without scheme", "notion.so/0123456789abcdef0123456789abcdef"},
		{"url with dashed id", "https://www.notion.so/01234567-89ab-cdef-0123-456789abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDatabaseID(tt.input)
			if err != nil {
				t.Fatalf("ParseDatabaseID(%q) error = %v", tt.input, err)
			}
			if got != want {
				t.Errorf("ParseDatabaseID(%q) = %q, want %q", tt.input, got, want)
			}
		})
	}
}

func TestParseDatabaseID_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "https://www.notion.so/myspace/", "0123456789abcdef0123456789abcdeg"} {
		_, err := ParseDatabaseID(input)
		if !errors.Is(err, ErrInvalidDatabaseID) {
			t.Errorf("ParseDatabaseID(%q) error = %v, want ErrInvalidDatabaseID", input, err)
		}
	}
}
