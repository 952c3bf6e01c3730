package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Rows are parsed line by line, so line breaks inside a cell become spaces.
var cellBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// XLSXToText converts the first sheet of a workbook to comma-separated text.
func XLSXToText(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("xlsx has no sheets")
	}
	name := sheets[0]

	rows, err := f.Rows(name)
	if err != nil {
		return "", fmt.Errorf("failed to read rows from sheet %s: %w", name, err)
	}
	defer rows.Close()

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return "", fmt.Errorf("failed to read row from sheet %s: %w", name, err)
		}
		if len(record) == 0 {
			continue
		}
		for i, cell := range record {
			record[i] = cellBreaks.Replace(cell)
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	if err := rows.Error(); err != nil {
		return "", fmt.Errorf("error iterating rows in sheet %s: %w", name, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return sb.String(), nil
}
