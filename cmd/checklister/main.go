package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/viant/afs"
	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"

	"github.com/viant/checklister/extract"
	"github.com/viant/checklister/segment"
	"github.com/viant/checklister/service"
)

func main() {
	startGops()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "serve":
		serveCmd(os.Args[2:])
	case "generate":
		generateCmd(os.Args[2:])
	case "segment":
		segmentCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: checklister <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  serve     Run the upload/preview/download web page (and optional MCP tools)")
	fmt.Fprintln(os.Stderr, "  generate  Write a compliance checklist workbook for each PDF of a location")
	fmt.Fprintln(os.Stderr, "  segment   Split stdin into sentences, one per line")
}

func generateCmd(args []string) {
	flags := flag.NewFlagSet("generate", flag.ExitOnError)
	src := flags.String("src", "", "PDF file or folder URL (required)")
	dest := flags.String("dest", "", "destination folder URL (default: next to the source)")
	configPath := flags.String("config", "", "config yaml (optional)")
	model := flags.String("model", "", "sentence model: "+strings.Join(segment.Models(), "|"))
	include := flags.String("include", "", "comma-separated include patterns (default *.pdf)")
	exclude := flags.String("exclude", "", "comma-separated exclude patterns, added to the defaults")
	maxSize := flags.Int("max-size", 0, "max document size in bytes")
	ignoreFile := flags.String("ignore-file", "", "URL of a .gitignore-style exclusion file (default from config)")
	flags.Parse(args)

	if *src == "" {
		flags.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := loadConfig(*configPath)
	svc, _ := newService(cfg, *model, 0)

	matcher, err := newMatcher(ctx, afs.New(), cfg.Match, matchFlags{
		Include:     parseCSV(*include),
		Exclude:     parseCSV(*exclude),
		MaxFileSize: *maxSize,
		IgnoreFile:  *ignoreFile,
	})
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	written, err := generate(ctx, svc, generateRequest{
		Source:  *src,
		Dest:    *dest,
		Matcher: matcher,
		Logf:    log.Printf,
	})
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	log.Printf("generate: wrote %d workbook(s)", len(written))
}

func segmentCmd(args []string) {
	flags := flag.NewFlagSet("segment", flag.ExitOnError)
	model := flags.String("model", "", "sentence model: "+strings.Join(segment.Models(), "|"))
	flags.Parse(args)

	seg, err := segment.New(*model)
	if err != nil {
		log.Fatalf("segment: %v", err)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("segment: read stdin: %v", err)
	}
	for _, sentence := range seg.Split(string(data)) {
		fmt.Println(sentence)
	}
}

func loadConfig(path string) *service.Config {
	if path == "" {
		return &service.Config{}
	}
	cfg, err := service.LoadConfig(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

// newService builds the pipeline once; the sentence model it loads is shared by every request.
func newService(cfg *service.Config, model string, previewRows int) (*service.Service, string) {
	if model == "" {
		model = cfg.Segmenter.Model
	}
	if model == "" {
		model = segment.ModelRule
	}
	seg, err := segment.New(model)
	if err != nil {
		log.Fatalf("segmenter: %v", err)
	}
	if previewRows <= 0 {
		previewRows = cfg.Server.PreviewRows
	}
	svc, err := service.NewService(
		service.WithSegmenter(seg),
		service.WithExtractor(extract.New(extract.WithSeparator(cfg.Extract.PageSeparator))),
		service.WithPreviewRows(previewRows),
		service.WithLogf(log.Printf),
	)
	if err != nil {
		log.Fatalf("service init: %v", err)
	}
	return svc, model
}

func parseCSV(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func startGops() {
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Printf("gops: %v", err)
	}
}
