package service

import "github.com/viant/checklister/checklist"

// Document is an uploaded PDF. It lives for one upload-to-download cycle.
type Document struct {
	Name string
	Data []byte
}

// Result is the outcome of processing one Document.
type Result struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	DownloadName string          `json:"downloadName"`
	Sentences    []string        `json:"-"`
	Table        checklist.Table `json:"-"`
	Preview      checklist.Table `json:"preview"`
	Workbook     []byte          `json:"-"`
}

// Rows returns the number of checklist rows.
func (r *Result) Rows() int {
	return len(r.Table)
}
