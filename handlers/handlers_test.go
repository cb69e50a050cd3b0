package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ytdigest/ytdigest/config"
	"github.com/ytdigest/ytdigest/models"
	"github.com/ytdigest/ytdigest/services/summary"
	"github.com/ytdigest/ytdigest/services/transcript"
)

type fakeTranscripts struct {
	result *models.TranscriptResult
	err    error
}

func (f *fakeTranscripts) Acquire(ctx context.Context, videoID, preferredLanguage string) (*models.TranscriptResult, error) {
	return f.result, f.err
}

type fakeLanguages struct {
	options []models.LanguageOption
}

func (f *fakeLanguages) List(ctx context.Context, videoID string) []models.LanguageOption {
	return f.options
}

type fakeSummaries struct {
	result  string
	err     error
	lastReq summary.Request
	called  bool
}

func (f *fakeSummaries) Summarize(ctx context.Context, req summary.Request) (string, error) {
	f.called = true
	f.lastReq = req
	return f.result, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		RequestTimeout:  2 * time.Minute,
		DefaultProvider: "gemini",
		GeminiAPIKey:    "cfg-gemini-key",
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestTranscriptSuccessWithSummary(t *testing.T) {
	summaries := &fakeSummaries{result: "- the point"}
	h := New(
		&fakeTranscripts{result: &models.TranscriptResult{Text: "hello", Source: models.SourceStructuredAPI, LanguageCode: "en"}},
		&fakeLanguages{},
		summaries,
		testConfig(),
	)

	rr := postJSON(t, h.Transcript, map[string]string{"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rr.Code, rr.Body.String())
	}

	var resp transcriptResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("got video_id %q", resp.VideoID)
	}
	if resp.Transcript != "hello" || resp.Summary != "- the point" || resp.SummaryError != "" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if summaries.lastReq.Provider != "gemini" || summaries.lastReq.APIKey != "cfg-gemini-key" {
		t.Errorf("summary request used %q/%q, want config defaults", summaries.lastReq.Provider, summaries.lastReq.APIKey)
	}
}

func TestTranscriptSummaryFailureKeepsTranscript(t *testing.T) {
	summaries := &fakeSummaries{err: &summary.SummarizationError{Kind: summary.MissingCredential, Provider: "gemini", Message: "no API key supplied or configured"}}
	h := New(
		&fakeTranscripts{result: &models.TranscriptResult{Text: "hello", Source: models.SourcePageScrape}},
		&fakeLanguages{},
		summaries,
		testConfig(),
	)

	rr := postJSON(t, h.Transcript, map[string]string{"url": "https://youtu.be/dQw4w9WgXcQ"})
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rr.Code, rr.Body.String())
	}

	var resp transcriptResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Transcript != "hello" {
		t.Errorf("transcript dropped on summary failure: %+v", resp)
	}
	if resp.Summary != "" || resp.SummaryError == "" {
		t.Errorf("expected summary_error only, got %+v", resp)
	}
}

func TestTranscriptAcquisitionErrorStatusCodes(t *testing.T) {
	tests := []struct {
		kind transcript.ErrorKind
		want int
	}{
		{transcript.ErrVideoUnavailable, http.StatusNotFound},
		{transcript.ErrNoCaptionsFound, http.StatusNotFound},
		{transcript.ErrTransientNetwork, http.StatusBadGateway},
	}
	for _, tt := range tests {
		h := New(
			&fakeTranscripts{err: &transcript.AcquisitionError{Kind: tt.kind, Message: "nope"}},
			&fakeLanguages{},
			&fakeSummaries{},
			testConfig(),
		)
		rr := postJSON(t, h.Transcript, map[string]string{"url": "https://youtu.be/dQw4w9WgXcQ"})
		if rr.Code != tt.want {
			t.Errorf("kind %v: got status %d, want %d", tt.kind, rr.Code, tt.want)
		}
		if !strings.Contains(rr.Body.String(), "nope") {
			t.Errorf("kind %v: error message not carried into body: %s", tt.kind, rr.Body.String())
		}
	}
}

func TestTranscriptRejectsBadURL(t *testing.T) {
	summaries := &fakeSummaries{}
	h := New(&fakeTranscripts{}, &fakeLanguages{}, summaries, testConfig())

	rr := postJSON(t, h.Transcript, map[string]string{"url": "https://example.com/watch?v=dQw4w9WgXcQ"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if summaries.called {
		t.Error("summarizer called for invalid URL")
	}
}

func TestTranscriptRejectsGet(t *testing.T) {
	h := New(&fakeTranscripts{}, &fakeLanguages{}, &fakeSummaries{}, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/transcript", nil)
	rr := httptest.NewRecorder()
	h.Transcript(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestLanguages(t *testing.T) {
	h := New(&fakeTranscripts{}, &fakeLanguages{options: []models.LanguageOption{
		{Code: "de", DisplayName: "German", Origin: models.OriginManual},
		{Code: "en", DisplayName: "English (auto-generated)", Origin: models.OriginGenerated},
	}}, &fakeSummaries{}, testConfig())

	rr := postJSON(t, h.Languages, map[string]string{"url": "https://youtu.be/dQw4w9WgXcQ"})
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		VideoID   string          `json:"video_id"`
		Languages []languageEntry `json:"languages"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Languages) != 2 {
		t.Fatalf("got %d languages, want 2", len(resp.Languages))
	}
	if resp.Languages[0].Generated || !resp.Languages[1].Generated {
		t.Errorf("generated flags wrong: %+v", resp.Languages)
	}
}

func TestSummarizeStatusCodes(t *testing.T) {
	tests := []struct {
		kind summary.ErrorKind
		want int
	}{
		{summary.UnsupportedProvider, http.StatusBadRequest},
		{summary.MissingCredential, http.StatusUnauthorized},
		{summary.Timeout, http.StatusGatewayTimeout},
		{summary.ProviderFailure, http.StatusBadGateway},
	}
	for _, tt := range tests {
		h := New(&fakeTranscripts{}, &fakeLanguages{}, &fakeSummaries{err: &summary.SummarizationError{Kind: tt.kind, Message: "nope"}}, testConfig())
		rr := postJSON(t, h.Summarize, map[string]string{"text": "some transcript"})
		if rr.Code != tt.want {
			t.Errorf("kind %v: got status %d, want %d", tt.kind, rr.Code, tt.want)
		}
		if !strings.Contains(rr.Body.String(), "nope") {
			t.Errorf("kind %v: error message not carried into body: %s", tt.kind, rr.Body.String())
		}
	}
}

func TestSummarizeSuccess(t *testing.T) {
	summaries := &fakeSummaries{result: "- summary"}
	h := New(&fakeTranscripts{}, &fakeLanguages{}, summaries, testConfig())

	rr := postJSON(t, h.Summarize, map[string]string{
		"text":    "some transcript",
		"service": "gemini",
		"api_key": "user-key",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rr.Code, rr.Body.String())
	}
	if summaries.lastReq.APIKey != "user-key" {
		t.Errorf("request key not preferred over config key: %q", summaries.lastReq.APIKey)
	}
}

func TestSummarizeRequiresText(t *testing.T) {
	h := New(&fakeTranscripts{}, &fakeLanguages{}, &fakeSummaries{}, testConfig())
	rr := postJSON(t, h.Summarize, map[string]string{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHealth(t *testing.T) {
	h := New(&fakeTranscripts{}, &fakeLanguages{}, &fakeSummaries{}, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusOK)
	}
}
