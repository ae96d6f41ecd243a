// Package ingest reads the article export produced by the content editor.
//
// The export is comma separated, but article bodies carry raw newlines, so a
// physical line is not a record. Lines are glued together until one ends with
// the quoted status column, and only then split into fields.
package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Record maps header names to the trimmed field values of one row.
type Record map[string]string

// Report describes what happened to the rows of the export.
type Report struct {
	Records      int        // logical records assembled after the header
	Accepted     int        // records with the expected number of fields
	Rejected     []Rejected // records dropped because of a field count mismatch
	Unterminated bool       // trailing text never closed by a status column
}

// Rejected is a record dropped because its field count differs from the header.
type Rejected struct {
	Line   int // line number where the record starts, 1-based
	Fields int
	Want   int
}

// String returns a human-readable description of the rejected record.
func (r Rejected) String() string {
	return fmt.Sprintf("line %d: %d fields, want %d", r.Line, r.Fields, r.Want)
}

var terminator = regexp.MustCompile(`(?i)","(draft|publish)"\s*$`)

// Read reads the whole export and returns its records in input order.
// Malformed records are never an error, they are listed in the report.
func Read(rd io.Reader) ([]Record, Report, error) {
	bts, err := io.ReadAll(rd)
	if err != nil {
		return nil, Report{}, fmt.Errorf("read export: %w", err)
	}

	recs, rep := Parse(string(bts))
	return recs, rep, nil
}

// Parse splits the export text into records.
func Parse(text string) ([]Record, Report) {
	var rep Report

	text = strings.TrimPrefix(text, "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, rep
	}

	lines := strings.Split(text, "\n")

	headers := SplitFields(lines[0])
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.ReplaceAll(h, `"`, ""))
	}

	var (
		result []Record
		buf    strings.Builder
		start  int
	)

	for i := 1; i < len(lines); i++ {
		if buf.Len() == 0 {
			start = i + 1
		}
		buf.WriteString(lines[i])

		if !terminator.MatchString(buf.String()) {
			buf.WriteByte('\n')
			continue
		}

		rep.Records++
		values := SplitFields(buf.String())
		buf.Reset()

		if len(values) != len(headers) {
			rep.Rejected = append(rep.Rejected, Rejected{Line: start, Fields: len(values), Want: len(headers)})
			continue
		}

		rec := make(Record, len(headers))
		for idx, h := range headers {
			rec[h] = values[idx]
		}
		result = append(result, rec)
		rep.Accepted++
	}

	rep.Unterminated = strings.TrimSpace(buf.String()) != ""

	return result, rep
}

// SplitFields splits one logical record on commas outside quoted spans.
// A doubled quote inside a quoted span is a literal quote. Every field is
// trimmed.
func SplitFields(line string) []string {
	var (
		result   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case ch == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			current.WriteByte('"')
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	return append(result, strings.TrimSpace(current.String()))
}
