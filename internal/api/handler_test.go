package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pfrederiksen/conf-tracker/internal/pipeline"
)

type stubFetcher struct {
	fragments []string
	err       error
}

func (s *stubFetcher) Fragments(_ context.Context, _, _ string) ([]string, error) {
	return s.fragments, s.err
}

func newTestRouter(fetcher FragmentFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(fetcher, pipeline.NewRunner(pipeline.NewMemStore())).Register(router)
	return router
}

func conferenceFragment(name, url string) string {
	return `<dl>
		<dt>Conference name</dt><dd><a href="` + url + `">` + name + `</a></dd>
		<dt>Location and date</dt><dd>Berlin, Germany・May 3 - May 5</dd>
	</dl>`
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubFetcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s, want ok status", w.Body.String())
	}
}

func TestScrape(t *testing.T) {
	router := newTestRouter(&stubFetcher{fragments: []string{
		conferenceFragment("GopherCon Europe", "https://gophercon.eu"),
		conferenceFragment("RustFest", "https://rustfest.global"),
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/scrape?url=https://confs.example.com&className=entry", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Results.Created != 2 {
		t.Errorf("Created = %d, want 2", resp.Results.Created)
	}
	if len(resp.Parsed) != 2 {
		t.Errorf("Parsed = %d candidates, want 2", len(resp.Parsed))
	}
	if resp.Parsed[0].Name != "GopherCon Europe" {
		t.Errorf("Parsed[0].Name = %q", resp.Parsed[0].Name)
	}
}

func TestScrape_MissingParams(t *testing.T) {
	router := newTestRouter(&stubFetcher{})

	tests := []struct {
		name   string
		target string
	}{
		{"no params", "/api/scrape"},
		{"missing className", "/api/scrape?url=https://confs.example.com"},
		{"missing url", "/api/scrape?className=entry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), "url and className are required") {
				t.Errorf("body = %s, want required-params error", w.Body.String())
			}
		})
	}
}

func TestScrape_FetchFailure(t *testing.T) {
	router := newTestRouter(&stubFetcher{err: errors.New("listing page unreachable")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/scrape?url=https://confs.example.com&className=entry", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "scrape failed") {
		t.Errorf("body = %s, want scrape failed error", w.Body.String())
	}
}

func TestScrape_PartialDataStillSucceeds(t *testing.T) {
	// One fragment has no usable URL; the run reports it per item
	// instead of failing the request.
	router := newTestRouter(&stubFetcher{fragments: []string{
		conferenceFragment("GopherCon Europe", "https://gophercon.eu"),
		`<dl><dt>Conference name</dt><dd>No Link Conf</dd></dl>`,
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/scrape?url=https://confs.example.com&className=entry", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if resp.Results.Created != 1 {
		t.Errorf("Created = %d, want 1", resp.Results.Created)
	}
	if len(resp.Results.Errors) != 1 {
		t.Errorf("Errors = %d, want 1", len(resp.Results.Errors))
	}
}
