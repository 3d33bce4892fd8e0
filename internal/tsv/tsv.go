// Package tsv parses the tab-delimited catalog tables.
//
// The format is deliberately forgiving: blank lines and lines whose trimmed
// content starts with '#' are skipped, the first remaining line is the
// header, and rows shorter than the header pad the missing trailing fields
// with empty strings. Every header name and field value is trimmed. Absent
// or malformed values are a downstream concern; this layer cannot fail.
package tsv

import "strings"

// Record maps trimmed header names to trimmed field values.
type Record map[string]string

// Table is the parsed form of one TSV document.
type Table struct {
	Header  []string
	Records []Record
}

// Parse splits text into header and records. CRLF and bare CR line endings
// are normalized to LF first.
func Parse(text string) Table {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	if len(rows) == 0 {
		return Table{}
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			rec[name] = value
		}
		records = append(records, rec)
	}
	return Table{Header: header, Records: records}
}
