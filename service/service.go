package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/viant/checklister/checklist"
	"github.com/viant/checklister/extract"
	"github.com/viant/checklister/segment"
)

// DefaultPreviewRows is the number of rows shown in a result preview.
const DefaultPreviewRows = 10

// Option configures the Service.
type Option func(*Service)

// WithSegmenter sets the sentence segmenter shared by every request.
func WithSegmenter(segmenter segment.Segmenter) Option {
	return func(s *Service) { s.segmenter = segmenter }
}

// WithExtractor sets the PDF text extractor.
func WithExtractor(extractor *extract.Extractor) Option {
	return func(s *Service) { s.extractor = extractor }
}

// WithPreviewRows sets the number of preview rows kept in each Result.
func WithPreviewRows(n int) Option {
	return func(s *Service) { s.previewRows = n }
}

// WithLogf sets the progress logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *Service) { s.logf = logf }
}

// Service turns PDF documents into compliance checklists.
type Service struct {
	segmenter   segment.Segmenter
	extractor   *extract.Extractor
	previewRows int
	logf        func(format string, args ...any)
}

// NewService creates a new Service. Without WithSegmenter the rule-based model is used.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.segmenter == nil {
		seg, err := segment.New(segment.ModelRule)
		if err != nil {
			return nil, err
		}
		s.segmenter = seg
	}
	if s.extractor == nil {
		s.extractor = extract.New()
	}
	if s.previewRows <= 0 {
		s.previewRows = DefaultPreviewRows
	}
	if s.logf == nil {
		s.logf = log.Printf
	}
	return s, nil
}

// PreviewRows returns the configured preview size.
func (s *Service) PreviewRows() int {
	return s.previewRows
}

// Segmenter returns the shared sentence segmenter.
func (s *Service) Segmenter() segment.Segmenter {
	return s.segmenter
}

// Process runs extraction, segmentation, checklist building and workbook
// encoding for one document.
func (s *Service) Process(ctx context.Context, doc Document) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := s.extractor.Text(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", doc.Name, err)
	}
	sentences := s.segmenter.Split(text)
	table := checklist.Build(sentences)
	reader, err := checklist.Write(table)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", doc.Name, err)
	}
	workbook, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("process %s: read workbook: %w", doc.Name, err)
	}
	id, err := documentID(doc)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", doc.Name, err)
	}
	s.logf("processed name=%s bytes=%d chars=%d sentences=%d", doc.Name, len(doc.Data), len(text), len(sentences))
	return &Result{
		ID:           id,
		Name:         doc.Name,
		DownloadName: checklist.DownloadName(doc.Name),
		Sentences:    sentences,
		Table:        table,
		Preview:      table.Head(s.previewRows),
		Workbook:     workbook,
	}, nil
}

// ProcessAll processes docs one at a time, in order. The first failure aborts
// the batch and is returned with the results completed so far.
func (s *Service) ProcessAll(ctx context.Context, docs []Document) ([]*Result, error) {
	results := make([]*Result, 0, len(docs))
	for _, doc := range docs {
		res, err := s.Process(ctx, doc)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
