/*
Package csvio provides the CSV import/export boundary of the console.

PURPOSE:
  Parsing raw delimited text into header-keyed rows, validating those rows
  into roster entities (partial-success batches with per-row error
  messages), and exporting both collections back to CSV in the column
  orders the original console used.

KEY CONCEPTS IN THIS FILE (parser.go):
  - Row: one data line as a header-name -> string-value mapping
  - Parse: the whole-file tokenizer contract

PARSE CONTRACT:
  - First line is the header; its tokens are trimmed and become keys.
  - Double-quoted fields may contain literal commas; a doubled quote
    inside a quoted field is one literal quote.
  - A line with fewer tokens than headers maps the missing keys to "".
  - Fewer than two lines yields an empty sequence, not an error.
  - Malformed input the tokenizer cannot consume is the only error;
    callers treat it as zero extracted rows.

The original tool tokenized lines with a regular expression; here the
standard library CSV reader does the tokenizing, which handles the same
quoting rules with precise, testable edge-case behavior.

SEE ALSO:
  - collaborators.go, records.go: row validators
  - export.go: collection exporters
*/
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row maps header names to the string value of one data line. Duplicate
// headers keep the last value.
type Row map[string]string

// Parse turns raw CSV text into an ordered sequence of rows.
func Parse(text string) ([]Row, error) {
	text = strings.TrimPrefix(text, "\uFEFF") // exports carry a BOM for spreadsheet apps

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unreadable CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unreadable CSV line: %w", err)
		}

		row := make(Row, len(header))
		for i, key := range header {
			if i < len(fields) {
				row[key] = fields[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
