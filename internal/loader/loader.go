// Package loader reads object identifiers from semicolon delimited catalog exports.
package loader

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Delimiter separates the fields of an input line
const Delimiter = ";"

// headerMarker identifies header rows; any line containing it is skipped
const headerMarker = "Name"

// ReadObjects opens the file at path and returns the object identifiers it lists
func ReadObjects(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	objects, err := ParseObjects(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return objects, nil
}

// ParseObjects extracts the first field of every data line in r.
//
// Lines that are empty, lack a delimiter or contain "Name" are skipped.
// The input is decoded to UTF-8 first: a UTF-8 byte order mark is dropped
// and content that is not valid UTF-8 is read as Windows-1252.
func ParseObjects(r io.Reader) ([]string, error) {
	decoded, err := decode(r)
	if err != nil {
		return nil, err
	}

	objects := []string{}
	for _, line := range strings.Split(decoded, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if len(line) == 0 || !strings.Contains(line, Delimiter) || strings.Contains(line, headerMarker) {
			continue
		}
		name, _, _ := strings.Cut(line, Delimiter)
		objects = append(objects, strings.TrimSpace(name))
	}

	return objects, nil
}

func decode(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	dec := unicode.UTF8BOM.NewDecoder()
	if !utf8.Valid(raw) {
		dec = charmap.Windows1252.NewDecoder()
	}
	text, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
