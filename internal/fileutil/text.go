package fileutil

import (
	"os"
	"unicode/utf8"
)

// ReadText reads the whole file at path and returns its content if it is
// valid UTF-8. Any failure yields ok == false.
func ReadText(path string) (content string, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}
