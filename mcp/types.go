package mcp

import "github.com/viant/checklister/checklist"

type ChecklistInput struct {
	URL   string `json:"url"`
	Limit int    `json:"limit,omitempty"`
}

type ChecklistOutput struct {
	Name         string          `json:"name"`
	DownloadName string          `json:"downloadName"`
	Rows         int             `json:"rows"`
	Preview      checklist.Table `json:"preview"`
}

type SegmentInput struct {
	Text string `json:"text"`
}

type SegmentOutput struct {
	Sentences []string `json:"sentences"`
}
