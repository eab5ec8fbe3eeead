package extract

import (
	"os"
	"strings"
	"unicode/utf8"
)

// readPlain returns file content as a single page. Invalid UTF-8 sequences are
// replaced with the replacement character.
func readPlain(path string) (string, map[int]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	if !utf8.Valid(content) {
		content = []byte(strings.ToValidUTF8(string(content), "�"))
	}
	text := string(content)
	return text, map[int]string{1: text}, nil
}
