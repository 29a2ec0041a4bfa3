// Package archive writes BibTeX text to local files: appending newly
// synchronized entries to the archive file and replacing downloaded files.
package archive

import (
	"fmt"
	"os"
)

// Append appends content to the file at path, preceded by a newline.
// The file is created if it doesn't exist. Existing bytes are never touched.
func Append(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}

	// Ensure we start on a new line
	if _, err := file.WriteString("\n" + content); err != nil {
		file.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Overwrite replaces the contents of the file at path.
func Overwrite(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
