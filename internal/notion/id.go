package notion

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// Matches: 0123456789abcdef0123456789abcdef
	hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
	// Matches: 01234567-89ab-cdef-0123-456789abcdef
	uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	// Matches the ID at the end of a URL path segment: Title-0123...cdef
	trailingIDPattern = regexp.MustCompile(`([0-9a-fA-F]{32})$`)
)

// ParseDatabaseID extracts a database ID and returns it as 32 lower-case hex
// characters. Supported formats:
//   - 0123456789abcdef0123456789abcdef
//   - 01234567-89ab-cdef-0123-456789abcdef
//   - https://www.notion.so/workspace/0123456789abcdef0123456789abcdef?v=...
//   - https://www.notion.so/workspace/Title-0123456789abcdef0123456789abcdef
func ParseDatabaseID(input string) (string, error) {
	input = strings.TrimSpace(input)

	if hexIDPattern.MatchString(input) {
		return strings.ToLower(input), nil
	}
	if uuidPattern.MatchString(input) {
		return strings.ToLower(strings.ReplaceAll(input, "-", "")), nil
	}

	if strings.Contains(input, "/") {
		raw := input
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		u, err := url.Parse(raw)
		if err == nil {
			segments := strings.Split(strings.Trim(u.Path, "/"), "/")
			last := segments[len(segments)-1]
			if uuidPattern.MatchString(last) {
				return strings.ToLower(strings.ReplaceAll(last, "-", "")), nil
			}
			if m := trailingIDPattern.FindStringSubmatch(last); m != nil {
				return strings.ToLower(m[1]), nil
			}
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDatabaseID, input)
}
