package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/22331a1268-rgb/read-sum-magic/internal/extraction"
	"github.com/22331a1268-rgb/read-sum-magic/internal/providers"
)

type fakeProvider struct {
	reply    string
	err      error
	readyErr error
}

func (f *fakeProvider) Ready() error { return f.readyErr }

func (f *fakeProvider) ExtractDocument(ctx context.Context, config providers.Config, prompt, imageDataURL string) (string, error) {
	return f.reply, f.err
}

func newTestHandler(p providers.Provider) *Handler {
	return New(extraction.NewServiceWith(p, providers.Config{Model: "test"}))
}

func postExtract(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleExtract(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response body is not JSON: %v (%s)", err, w.Body.String())
	}
	return body
}

const validReply = `{"headerInfo":{"Exam":"Final"},"tableData":[{"qNo":"1","a":"5","b":"","c":"","total":"5"}],"writtenTotal":5,"bubbleDigits":5}`

func TestHandleExtractValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing image",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "No image provided",
		},
		{
			name:       "non image subtype",
			body:       `{"imageBase64": "data:text/plain;base64,AAAA"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Unsupported image format. Supported formats: jpeg, jpg, png, webp, gif, bmp",
		},
		{
			name:       "uppercase subtype rejected",
			body:       `{"imageBase64": "data:image/PNG;base64,AAAA"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Unsupported image format. Supported formats: jpeg, jpg, png, webp, gif, bmp",
		},
		{
			name:       "missing base64 marker",
			body:       `{"imageBase64": "data:image/png,AAAA"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Unsupported image format. Supported formats: jpeg, jpg, png, webp, gif, bmp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeProvider{reply: validReply})
			w := postExtract(h, tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := decodeError(t, w)["error"]; got != tt.wantError {
				t.Errorf("Error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestHandleExtractOversizedImage(t *testing.T) {
	// Smallest payload whose estimated decoded size exceeds 10 MiB.
	payload := strings.Repeat("A", 10*1024*1024*4/3+4)
	body := `{"imageBase64": "data:image/jpeg;base64,` + payload + `"}`

	h := newTestHandler(&fakeProvider{reply: validReply})
	w := postExtract(h, body)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
	if got := decodeError(t, w)["error"]; got != "Image too large. Maximum size is 10MB." {
		t.Errorf("Error = %q", got)
	}
}

func TestHandleExtractMissingAPIKey(t *testing.T) {
	h := newTestHandler(&fakeProvider{readyErr: errors.New("OPENAI_API_KEY environment variable not set")})
	w := postExtract(h, `{"imageBase64": "data:image/png;base64,AAAA"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", w.Code)
	}
	if got := decodeError(t, w)["error"]; got != "API key not configured" {
		t.Errorf("Error = %q", got)
	}
}

func TestHandleExtractUpstreamStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		upstream   int
		wantStatus int
		wantError  string
	}{
		{
			name:       "rate limited",
			upstream:   http.StatusTooManyRequests,
			wantStatus: http.StatusTooManyRequests,
			wantError:  "Rate limit exceeded. Please try again later.",
		},
		{
			name:       "credits exhausted",
			upstream:   http.StatusPaymentRequired,
			wantStatus: http.StatusPaymentRequired,
			wantError:  "AI credits exhausted. Please add credits.",
		},
		{
			name:       "other upstream failure",
			upstream:   http.StatusBadGateway,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to process document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeProvider{err: &providers.StatusError{StatusCode: tt.upstream, Body: "upstream detail"}})
			w := postExtract(h, `{"imageBase64": "data:image/png;base64,AAAA"}`)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decodeError(t, w)
			if body["error"] != tt.wantError {
				t.Errorf("Error = %q, want %q", body["error"], tt.wantError)
			}
			// upstream detail stays server-side
			if strings.Contains(w.Body.String(), "upstream detail") {
				t.Error("Upstream detail leaked to caller")
			}
		})
	}
}

func TestHandleExtractFencedReply(t *testing.T) {
	h := newTestHandler(&fakeProvider{reply: "```json\n" + validReply + "\n```"})
	w := postExtract(h, `{"imageBase64": "data:image/png;base64,AAAA"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Missing wildcard CORS header")
	}

	var parsed struct {
		BubbleDigits int `json:"bubbleDigits"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("Body is not JSON: %v", err)
	}
	if parsed.BubbleDigits != 5 {
		t.Errorf("bubbleDigits = %d, want 5", parsed.BubbleDigits)
	}
}

func TestHandleExtractUnparseableReply(t *testing.T) {
	reply := "```json\nthis is not json\n```"
	h := newTestHandler(&fakeProvider{reply: reply})
	w := postExtract(h, `{"imageBase64": "data:image/png;base64,AAAA"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", w.Code)
	}
	body := decodeError(t, w)
	if body["error"] != "Failed to parse extracted data" {
		t.Errorf("Error = %q", body["error"])
	}
	if body["rawContent"] != reply {
		t.Errorf("rawContent = %q, want the original unstripped reply", body["rawContent"])
	}
}

func TestHandleExtractOptions(t *testing.T) {
	h := newTestHandler(&fakeProvider{})
	req := httptest.NewRequest(http.MethodOptions, "/api/extract", nil)
	w := httptest.NewRecorder()
	h.HandleExtract(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Missing wildcard CORS header on preflight")
	}
}

func TestHandleExtractRejectsGet(t *testing.T) {
	h := newTestHandler(&fakeProvider{})
	req := httptest.NewRequest(http.MethodGet, "/api/extract", nil)
	w := httptest.NewRecorder()
	h.HandleExtract(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want 405", w.Code)
	}
}
