package checklist

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBuild(t *testing.T) {
	sentences := []string{"Access is logged.", "Keys rotate every 90 days.", "Access is logged."}
	table := Build(sentences)
	if len(table) != len(sentences) {
		t.Fatalf("expected %d rows, got %d", len(sentences), len(table))
	}
	for i, row := range table {
		if row.Sentence != sentences[i] {
			t.Fatalf("row %d sentence=%q want %q", i, row.Sentence, sentences[i])
		}
		if row.Compliant != "" || row.Comments != "" {
			t.Fatalf("row %d review fields should be empty: %+v", i, row)
		}
	}
	if got := Build(nil); len(got) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(got))
	}
}

func TestTable_Head(t *testing.T) {
	table := Build([]string{"a", "b", "c"})
	tests := []struct {
		n    int
		want int
	}{
		{n: 10, want: 3},
		{n: 2, want: 2},
		{n: 0, want: 0},
		{n: -1, want: 0},
	}
	for _, tt := range tests {
		if got := len(table.Head(tt.n)); got != tt.want {
			t.Fatalf("Head(%d) len=%d want %d", tt.n, got, tt.want)
		}
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	sentences := []string{
		"This is sentence one.",
		"This is sentence two.",
		"Vendors must report incidents within 24 hours.",
	}
	reader, err := Write(Build(sentences))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if len(data) == 0 || reader.Size() != int64(len(data)) {
		t.Fatalf("expected reader positioned at start, read %d of %d bytes", len(data), reader.Size())
	}

	table, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(table.Sentences(), sentences) {
		t.Fatalf("sentences=%q want %q", table.Sentences(), sentences)
	}
	for i, row := range table {
		if row.Compliant != "" || row.Comments != "" {
			t.Fatalf("row %d review fields should be empty: %+v", i, row)
		}
	}
}

func TestWrite_SingleSheetLayout(t *testing.T) {
	reader, err := Write(Build([]string{"Only one."}))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := excelize.OpenReader(reader)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); !reflect.DeepEqual(sheets, []string{SheetName}) {
		t.Fatalf("sheets=%v want [%s]", sheets, SheetName)
	}
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], Headers()) {
		t.Fatalf("header=%v want %v", rows[0], Headers())
	}
	if rows[1][0] != "Only one." {
		t.Fatalf("unexpected first cell %q", rows[1][0])
	}
}

func TestWrite_EmptyTable(t *testing.T) {
	reader, err := Write(Build(nil))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := io.ReadAll(reader)
	table, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(table))
	}
}

func TestWrite_TrailingEmptyRows(t *testing.T) {
	sentences := []string{"Keys rotate yearly.", "", ""}
	reader, err := Write(Build(sentences))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := io.ReadAll(reader)
	table, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(table.Sentences(), sentences) {
		t.Fatalf("sentences=%q want %q", table.Sentences(), sentences)
	}
}

func TestWrite_CellLimit(t *testing.T) {
	longest := strings.Repeat("a", excelize.TotalCellChars)
	reader, err := Write(Build([]string{longest}))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := io.ReadAll(reader)
	table, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table) != 1 || len(table[0].Sentence) != excelize.TotalCellChars {
		t.Fatalf("expected one row of %d characters, got %d rows", excelize.TotalCellChars, len(table))
	}

	_, err = Write(Build([]string{"Short.", longest + "a"}))
	if !errors.Is(err, ErrCellTooLong) {
		t.Fatalf("expected ErrCellTooLong, got %v", err)
	}
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "report.pdf", want: "report_compliance_checklist.xlsx"},
		{in: "report", want: "report"},
		{in: "a.pdf.pdf", want: "a_compliance_checklist.xlsx.pdf"},
		{in: "policy.PDF", want: "policy.PDF"},
	}
	for _, tt := range tests {
		if got := DownloadName(tt.in); got != tt.want {
			t.Fatalf("DownloadName(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}
