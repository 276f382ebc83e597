package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"

	"github.com/viant/checklister/service"
)

//go:embed tools/checklist.md
var descChecklist string

//go:embed tools/segment.md
var descSegment string

func registerTools(registry *protoserver.Registry, h *Handler) error {
	if err := protoserver.RegisterTool[*ChecklistInput, *ChecklistOutput](registry, "checklist", descChecklist, func(ctx context.Context, in *ChecklistInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.checklist(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*SegmentInput, *SegmentOutput](registry, "segment", descSegment, func(ctx context.Context, in *SegmentInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.segment(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	return nil
}

func buildErrorResult(message string) (*schema.CallToolResult, *jsonrpc.Error) {
	return nil, jsonrpc.NewError(jsonrpc.InvalidParams, message, nil)
}

func buildSuccessResult(payload any) (*schema.CallToolResult, *jsonrpc.Error) {
	b, _ := json.Marshal(payload)
	return &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{
			schema.TextContent{Type: "text", Text: string(b)},
		},
		StructuredContent: map[string]any{"result": payload},
	}, nil
}

func (h *Handler) checklist(ctx context.Context, in *ChecklistInput) (*ChecklistOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &ChecklistInput{}
	}
	location := strings.TrimSpace(in.URL)
	if location == "" {
		return nil, fmt.Errorf("mcp: missing url")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = h.service.PreviewRows()
	}
	data, err := h.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("mcp: load %s: %w", location, err)
	}
	res, err := h.service.Process(ctx, service.Document{Name: path.Base(url.Path(location)), Data: data})
	if err != nil {
		return nil, err
	}
	if h.metricsLog {
		log.Printf("mcp metric op=checklist url=%s rows=%d dur=%s", location, res.Rows(), time.Since(start))
	}
	return &ChecklistOutput{
		Name:         res.Name,
		DownloadName: res.DownloadName,
		Rows:         res.Rows(),
		Preview:      res.Table.Head(limit),
	}, nil
}

func (h *Handler) segment(_ context.Context, in *SegmentInput) (*SegmentOutput, error) {
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil {
		in = &SegmentInput{}
	}
	return &SegmentOutput{Sentences: h.service.Segmenter().Split(in.Text)}, nil
}
