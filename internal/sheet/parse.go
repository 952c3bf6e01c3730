// Package sheet turns delimited spreadsheet exports into header-keyed rows.
package sheet

import "strings"

const bom = "\uFEFF"

// Options tunes Parse. The zero value detects the delimiter from the header line.
type Options struct {
	Delimiter rune
}

// Parse splits raw delimited text into rows keyed by the first line's headers.
// Rows whose first column is empty are dropped.
func Parse(raw string) []RawRow {
	return ParseWith(raw, Options{})
}

// ParseWith is Parse with explicit options. The text is split into non-blank lines
// first; a quote never carries a field across a line break.
func ParseWith(raw string, opts Options) []RawRow {
	lines := splitLines(strings.TrimPrefix(raw, bom))
	if len(lines) < 2 {
		return []RawRow{}
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = detectLineDelimiter(lines[0])
	}

	headers := splitLine(lines[0], delim)
	rows := make([]RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitLine(line, delim)
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		rows = append(rows, NewRawRow(headers, fields))
	}
	return rows
}

// splitLines returns the lines of raw that hold anything besides whitespace.
func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// splitLine tokenizes one line. A double quote toggles quoting anywhere in a field,
// "" inside quotes is a literal quote, and an unterminated quote runs to the end of
// the line.
func splitLine(line string, delim rune) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(runes) && runes[i+1] == '"':
			current.WriteRune('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	return append(fields, cleanField(current.String()))
}

func cleanField(f string) string {
	f = strings.TrimSpace(f)
	if len(f) >= 2 && f[0] == '"' && f[len(f)-1] == '"' {
		f = strings.TrimSpace(f[1 : len(f)-1])
	}
	return f
}

// DetectDelimiter inspects the first non-blank line. Comma wins whenever it appears
// outside quotes; otherwise the more frequent of ';' and tab is used.
func DetectDelimiter(raw string) rune {
	lines := splitLines(strings.TrimPrefix(raw, bom))
	if len(lines) == 0 {
		return ','
	}
	return detectLineDelimiter(lines[0])
}

func detectLineDelimiter(line string) rune {
	counts := map[rune]int{}
	inQuotes := false
	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case c == ',' || c == ';' || c == '\t':
			counts[c]++
		}
	}
	if counts[','] > 0 {
		return ','
	}
	if counts[';'] == 0 && counts['\t'] == 0 {
		return ','
	}
	if counts['\t'] > counts[';'] {
		return '\t'
	}
	return ';'
}
