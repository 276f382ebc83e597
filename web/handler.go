// Package web serves the single-page upload, preview and download shell.
package web

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/viant/checklister/checklist"
	"github.com/viant/checklister/service"
	"github.com/viant/checklister/session"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Funcs(sprig.HtmlFuncMap()).Parse(indexHTML))

const (
	// CookieName holds the session id.
	CookieName = "checklister_session"
	// DefaultMaxMemory bounds the multipart form held in memory; the rest spills to temp files.
	DefaultMaxMemory = 64 << 20
	formField        = "files"
)

// Option configures the Handler.
type Option func(*Handler)

// WithMaxUploadBytes caps the request body of an upload. Zero leaves it to the hosting environment.
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) { h.maxUpload = n }
}

// WithModel sets the sentence model name shown in the page.
func WithModel(model string) Option {
	return func(h *Handler) { h.model = model }
}

// WithLogf sets the logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(h *Handler) { h.logf = logf }
}

// Handler serves upload, preview and download requests.
type Handler struct {
	service   *service.Service
	sessions  *session.Store
	maxUpload int64
	model     string
	logf      func(format string, args ...any)
}

// New creates a Handler.
func New(svc *service.Service, sessions *session.Store, opts ...Option) *Handler {
	h := &Handler{service: svc, sessions: sessions, logf: log.Printf}
	for _, opt := range opts {
		opt(h)
	}
	if h.sessions == nil {
		h.sessions = session.New(0)
	}
	return h
}

// Routes returns the HTTP routes of the shell.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", h.Index)
	r.Post("/upload", h.Upload)
	r.Get("/download/{id}", h.Download)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

type pageView struct {
	Results      []*service.Result
	Headers      []string
	Message      string
	MessageClass string
	Model        string
	Year         int
}

// Index renders the results of the current session, or the upload prompt.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var results []*service.Result
	if id, ok := sessionID(r); ok {
		results = h.sessions.Results(id)
	}
	h.render(w, http.StatusOK, pageView{Results: results})
}

// Upload processes every uploaded file in order and renders the session's results.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}
	if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, fmt.Sprintf("upload: %v", err), http.StatusBadRequest)
		return
	}
	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[formField]
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	id, ok := sessionID(r)
	if !ok {
		id = session.NewID()
		http.SetCookie(w, &http.Cookie{Name: CookieName, Value: id, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	}
	if len(headers) == 0 {
		h.render(w, http.StatusOK, pageView{Results: h.sessions.Results(id)})
		return
	}

	docs, err := readDocuments(headers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	results, err := h.process(r.Context(), docs)
	if err != nil {
		h.logf("upload: session=%s err=%v", id, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.sessions.Append(id, results...)
	h.render(w, http.StatusOK, pageView{
		Results:      h.sessions.Results(id),
		Message:      fmt.Sprintf("%d file(s) uploaded.", len(docs)),
		MessageClass: "success",
	})
}

func (h *Handler) process(ctx context.Context, docs []service.Document) ([]*service.Result, error) {
	start := time.Now()
	results, err := h.service.ProcessAll(ctx, docs)
	if err != nil {
		return nil, err
	}
	h.logf("upload: files=%d dur=%s", len(docs), time.Since(start))
	return results, nil
}

// Download serves the workbook of one result of the current session.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	res, ok := h.sessions.Lookup(id, chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", checklist.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.DownloadName}))
	http.ServeContent(w, r, res.DownloadName, time.Time{}, bytes.NewReader(res.Workbook))
}

func (h *Handler) render(w http.ResponseWriter, status int, view pageView) {
	view.Headers = checklist.Headers()
	view.Model = h.model
	view.Year = time.Now().Year()
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, view); err != nil {
		http.Error(w, fmt.Sprintf("render: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || !session.Valid(c.Value) {
		return "", false
	}
	return c.Value, true
}

func readDocuments(headers []*multipart.FileHeader) ([]service.Document, error) {
	docs := make([]service.Document, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}
		docs = append(docs, service.Document{Name: fh.Filename, Data: data})
	}
	return docs, nil
}
