package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/viant/checklister/matching"
	"github.com/viant/checklister/matching/option"
	"github.com/viant/checklister/service"
)

type generateRequest struct {
	Source  string
	Dest    string
	Matcher *matching.Manager
	Logf    func(format string, args ...any)
}

// generate writes one workbook per matching PDF under req.Source and returns
// the written URLs. Documents are processed one at a time; the first failure
// stops the run.
func generate(ctx context.Context, svc *service.Service, req generateRequest) ([]string, error) {
	fs := afs.New()
	if req.Logf == nil {
		req.Logf = func(string, ...any) {}
	}
	if req.Matcher == nil {
		req.Matcher = matching.New()
	}
	source := strings.TrimRight(req.Source, "/")
	object, err := fs.Object(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", source, err)
	}

	var candidates []storage.Object
	dest := req.Dest
	if object.IsDir() {
		objects, err := fs.List(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", source, err)
		}
		for _, obj := range objects {
			if obj.IsDir() {
				continue
			}
			candidates = append(candidates, obj)
		}
		if dest == "" {
			dest = source
		}
	} else {
		candidates = append(candidates, object)
		if dest == "" {
			dest = parentURL(source)
		}
	}

	var written []string
	for _, obj := range candidates {
		if req.Matcher.IsExcluded(obj.URL(), int(obj.Size())) {
			continue
		}
		data, err := fs.Download(ctx, obj)
		if err != nil {
			return written, fmt.Errorf("download %s: %w", obj.URL(), err)
		}
		res, err := svc.Process(ctx, service.Document{Name: obj.Name(), Data: data})
		if err != nil {
			return written, err
		}
		target := url.Join(dest, res.DownloadName)
		if res.DownloadName == res.Name {
			target = url.Join(dest, res.Name+"_compliance_checklist.xlsx")
		}
		if err := fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(res.Workbook)); err != nil {
			return written, fmt.Errorf("upload %s: %w", target, err)
		}
		req.Logf("generate: %s -> %s rows=%d", obj.URL(), target, res.Rows())
		written = append(written, target)
	}
	return written, nil
}

// matchFlags are command-line selection settings; set fields override or extend config.
type matchFlags struct {
	Include     []string
	Exclude     []string
	MaxFileSize int
	IgnoreFile  string
}

// newMatcher layers flag patterns over the configured ones. The ignore file, from
// the flag or else the config, is loaded through afs so it may live in a bucket.
func newMatcher(ctx context.Context, fs afs.Service, cfg service.MatchConfig, flags matchFlags) (*matching.Manager, error) {
	configured := &option.Options{
		Inclusions:  cfg.Include,
		Exclusions:  cfg.Exclude,
		MaxFileSize: cfg.MaxFileSize,
	}
	opts := configured.Options()
	if len(flags.Include) > 0 {
		opts = append(opts, option.WithInclusionPatterns(flags.Include...))
	}
	if len(flags.Exclude) > 0 {
		opts = append(opts, option.WithExclusionPatterns(flags.Exclude...))
	}
	if flags.MaxFileSize > 0 {
		opts = append(opts, option.WithMaxFileSize(flags.MaxFileSize))
	}
	ignoreURL := cfg.IgnoreFile
	if flags.IgnoreFile != "" {
		ignoreURL = flags.IgnoreFile
	}
	if ignoreURL != "" {
		data, err := fs.DownloadWithURL(ctx, ignoreURL)
		if err != nil {
			return nil, fmt.Errorf("ignore file %s: %w", ignoreURL, err)
		}
		opts = append(opts, option.WithIgnoreFile(bytes.NewReader(data)))
	}
	return matching.New(opts...), nil
}

func parentURL(location string) string {
	idx := strings.LastIndex(location, "/")
	if idx <= 0 {
		return "."
	}
	return location[:idx]
}
