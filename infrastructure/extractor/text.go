package extractor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// ReadText reads a file as UTF-8 text. Bytes that do not form valid
// UTF-8 are dropped rather than failing the read, so mostly-text files
// with stray binary content still yield their readable portions.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(bytes.ToValidUTF8(data, nil)), nil
}

// SplitLines turns extracted text into the line sequence the search
// operates on: newlines are normalized and blank lines are dropped, so
// line numbers refer to positions in the returned slice.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
