package leda

import (
	"strings"
)

// commentMarker flags lines the server emits as metadata
const commentMarker = "#"

// ParseResponse splits a delimited response body into data rows.
//
// Lines containing the comment marker and lines shorter than two bytes are
// dropped. The first surviving line is the column header echoed by the server
// and is dropped too.
func ParseResponse(body string) []Row {
	var records [][]string
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(line, commentMarker) {
			continue
		}
		if len(line) > 1 {
			records = append(records, strings.Split(line, Delimiter))
		}
	}

	if len(records) == 0 {
		return nil
	}

	rows := make([]Row, 0, len(records)-1)
	for _, fields := range records[1:] {
		rows = append(rows, newRow(fields))
	}
	return rows
}
