package checklist

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the name of the single worksheet.
	SheetName = "Checklist"
	// ContentType is the MIME type of the encoded workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ErrCellTooLong is returned by Write when a field exceeds the xlsx cell limit
// of excelize.TotalCellChars characters. Such a cell would otherwise be truncated.
var ErrCellTooLong = errors.New("cell exceeds xlsx character limit")

// Write encodes table as an xlsx workbook with a single "Checklist" sheet: a
// header row followed by one row per entry, without an index column. The
// returned reader is positioned at the start of the workbook.
func Write(table Table) (*bytes.Reader, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("checklist: rename sheet: %w", err)
	}
	header := make([]interface{}, 0, 3)
	for _, h := range Headers() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("checklist: set header: %w", err)
	}
	for i, row := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("checklist: row %d: %w", i+1, err)
		}
		for _, value := range []string{row.Sentence, row.Compliant, row.Comments} {
			if n := utf8.RuneCountInString(value); n > excelize.TotalCellChars {
				return nil, fmt.Errorf("checklist: row %d has %d characters: %w", i+1, n, ErrCellTooLong)
			}
		}
		values := []interface{}{row.Sentence, row.Compliant, row.Comments}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("checklist: set row %d: %w", i+1, err)
		}
	}
	// Read relies on the dimension to restore trailing empty rows.
	if err := f.SetSheetDimension(SheetName, fmt.Sprintf("A1:C%d", len(table)+1)); err != nil {
		return nil, fmt.Errorf("checklist: set dimension: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("checklist: write xlsx: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}

// Read decodes the "Checklist" sheet of an xlsx workbook.
// Trailing empty cells are restored as empty review fields, and trailing
// empty rows are restored up to the sheet dimension.
func Read(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("checklist: open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("checklist: read sheet %s: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("checklist: sheet %s has no header", SheetName)
	}
	if got := strings.Join(rows[0], "|"); got != strings.Join(Headers(), "|") {
		return nil, fmt.Errorf("checklist: unexpected header %q", got)
	}
	table := make(Table, 0, len(rows)-1)
	for _, cols := range rows[1:] {
		var row Row
		if len(cols) > 0 {
			row.Sentence = cols[0]
		}
		if len(cols) > 1 {
			row.Compliant = cols[1]
		}
		if len(cols) > 2 {
			row.Comments = cols[2]
		}
		table = append(table, row)
	}
	last := dimensionRows(f)
	for len(table) < last-1 {
		table = append(table, Row{})
	}
	return table, nil
}

// dimensionRows returns the last row of the sheet dimension, or 0 when unknown.
func dimensionRows(f *excelize.File) int {
	ref, err := f.GetSheetDimension(SheetName)
	if err != nil {
		return 0
	}
	if idx := strings.LastIndex(ref, ":"); idx >= 0 {
		ref = ref[idx+1:]
	}
	_, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0
	}
	return row
}
