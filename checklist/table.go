// Package checklist builds compliance checklists from sentences and encodes
// them as single-sheet xlsx workbooks.
package checklist

// Column headers, in sheet order.
const (
	ColumnSentence  = "Compliance Point"
	ColumnCompliant = "Compliant (Yes/No)"
	ColumnComments  = "Comments"
)

// Row is one sentence paired with the review fields a human fills in after download.
type Row struct {
	Sentence  string `json:"sentence"`
	Compliant string `json:"compliant"`
	Comments  string `json:"comments"`
}

// Table is an ordered checklist, one row per sentence.
type Table []Row

// Headers returns the column headers in sheet order.
func Headers() []string {
	return []string{ColumnSentence, ColumnCompliant, ColumnComments}
}

// Build returns a table with one row per sentence, in order, with empty review fields.
func Build(sentences []string) Table {
	table := make(Table, len(sentences))
	for i, sentence := range sentences {
		table[i] = Row{Sentence: sentence}
	}
	return table
}

// Head returns the first n rows.
func (t Table) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > len(t) {
		n = len(t)
	}
	return t[:n]
}

// Sentences returns the sentence column.
func (t Table) Sentences() []string {
	out := make([]string, len(t))
	for i, row := range t {
		out[i] = row.Sentence
	}
	return out
}
