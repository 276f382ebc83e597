package web

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/viant/checklister/checklist"
	"github.com/viant/checklister/extract/pdftest"
	"github.com/viant/checklister/service"
	"github.com/viant/checklister/session"
)

type upload struct {
	name string
	data []byte
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc, err := service.NewService(service.WithLogf(t.Logf))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	h := New(svc, session.New(8), WithLogf(t.Logf))
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func multipartBody(t *testing.T, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(formField, f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func post(t *testing.T, client *http.Client, url string, files ...upload) (*http.Response, string) {
	t.Helper()
	body, contentType := multipartBody(t, files...)
	resp, err := client.Post(url+"/upload", contentType, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, string(data)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("missing %s cookie", CookieName)
	return nil
}

func TestIndex_ShowsPromptWithoutUploads(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Please upload at least one PDF to get started.") {
		t.Fatalf("expected upload prompt")
	}
}

func TestUpload_NoFilesShowsPrompt(t *testing.T) {
	srv := newTestServer(t)
	resp, body := post(t, srv.Client(), srv.URL)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if !strings.Contains(body, "Please upload at least one PDF to get started.") {
		t.Fatalf("expected upload prompt")
	}
}

func TestUpload_PreviewAndDownload(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()
	var text strings.Builder
	for i := 0; i < 12; i++ {
		text.WriteString("Access reviews are performed. ")
	}
	resp, body := post(t, client, srv.URL,
		upload{name: "report.pdf", data: pdftest.Build("This is sentence one. This is sentence two.")},
		upload{name: "policy.pdf", data: pdftest.Build(text.String())},
	)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	if resp.Request.URL.Path != "/upload" {
		t.Fatalf("upload was redirected to %s, want the page rendered in place", resp.Request.URL.Path)
	}
	for _, want := range []string{
		"2 file(s) uploaded.",
		"Preview: report.pdf",
		"Preview: policy.pdf",
		"Download report_compliance_checklist.xlsx",
		"Download policy_compliance_checklist.xlsx",
		"12 rows, showing the first 10",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
	if strings.Count(body, "Access reviews are performed.") != 10 {
		t.Fatalf("expected 10 preview rows")
	}

	cookie := sessionCookie(t, resp)
	svc, _ := service.NewService(service.WithLogf(t.Logf))
	want, err := svc.Process(t.Context(), service.Document{Name: "report.pdf", Data: pdftest.Build("This is sentence one. This is sentence two.")})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/download/"+want.ID, nil)
	req.AddCookie(cookie)
	dl, err := client.Do(req)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer dl.Body.Close()
	if dl.StatusCode != http.StatusOK {
		t.Fatalf("download status=%d", dl.StatusCode)
	}
	if ct := dl.Header.Get("Content-Type"); ct != checklist.ContentType {
		t.Fatalf("content type=%q", ct)
	}
	_, params, err := mime.ParseMediaType(dl.Header.Get("Content-Disposition"))
	if err != nil {
		t.Fatalf("content disposition: %v", err)
	}
	if params["filename"] != "report_compliance_checklist.xlsx" {
		t.Fatalf("filename=%q", params["filename"])
	}
	data, _ := io.ReadAll(dl.Body)
	table, err := checklist.Read(data)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if got := table.Sentences(); len(got) != 2 || got[0] != "This is sentence one." || got[1] != "This is sentence two." {
		t.Fatalf("unexpected sentences %q", got)
	}

	// A later upload in the same session appends to the view.
	body2, contentType := multipartBody(t, upload{name: "annex.pdf", data: pdftest.Build("Annex applies.")})
	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/upload", body2)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	resp3, err := client.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp3.Body.Close()
	page, _ := io.ReadAll(resp3.Body)
	for _, want := range []string{"Preview: report.pdf", "Preview: policy.pdf", "Preview: annex.pdf"} {
		if !strings.Contains(string(page), want) {
			t.Fatalf("expected %q after second upload", want)
		}
	}
}

func TestDownload_UnknownResult(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/download/deadbeef")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want 404", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/download/deadbeef", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: session.NewID()})
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want 404", resp.StatusCode)
	}
}

func TestUpload_InvalidPDF(t *testing.T) {
	srv := newTestServer(t)
	resp, body := post(t, srv.Client(), srv.URL, upload{name: "broken.pdf", data: []byte("not a pdf")})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", resp.StatusCode)
	}
	if !strings.Contains(body, "broken.pdf") {
		t.Fatalf("expected file name in error body: %s", body)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Fatalf("body=%q", body)
	}
}
