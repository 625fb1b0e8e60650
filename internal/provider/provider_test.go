package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codedrill/codedrill/internal/model"
)

func TestRemoteFetchCode(t *testing.T) {
	var gotAuth, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) == 1 {
			gotPrompt = req.Messages[0].Content
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "```rust\nfn main() {}\n```"}},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	remote := NewRemote(model.ProviderConfig{
		Endpoint: srv.URL,
		Model:    "test-model",
		APIKey:   "secret",
		Timeout:  5 * time.Second,
	})
	code, err := remote.FetchCode(context.Background(), model.LangRust)
	if err != nil {
		t.Fatalf("fetch code: %v", err)
	}
	if code != "fn main() {}\n" {
		t.Fatalf("unexpected code: %q", code)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if !strings.Contains(gotPrompt, "Rust") {
		t.Fatalf("prompt must name the language: %q", gotPrompt)
	}
}

func TestRemoteFetchCodeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	remote := NewRemote(model.ProviderConfig{Endpoint: srv.URL})
	if _, err := remote.FetchCode(context.Background(), model.LangPython); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestRemoteFetchCodeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	remote := NewRemote(model.ProviderConfig{Endpoint: srv.URL})
	if _, err := remote.FetchCode(context.Background(), model.LangPython); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestExtractCodeBlock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lang    model.Language
		want    string
	}{
		{
			name:    "no fences returns raw content",
			content: "def f():\n    pass\n",
			lang:    model.LangPython,
			want:    "def f():\n    pass\n",
		},
		{
			name:    "language-tagged block wins",
			content: "Here is code:\n```py\nx = 1\n```\ndone",
			lang:    model.LangPython,
			want:    "x = 1\n",
		},
		{
			name:    "untagged block falls back to first fence",
			content: "```\nint main() {}\n```",
			lang:    model.LangCpp,
			want:    "int main() {}\n",
		},
		{
			name:    "display name matches too",
			content: "```Rust\nfn main() {}\n```",
			lang:    model.LangRust,
			want:    "fn main() {}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCodeBlock(tt.content, tt.lang); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

type stubSource struct {
	text string
	err  error
}

func (s stubSource) FetchCode(context.Context, model.Language) (string, error) {
	return s.text, s.err
}

func TestResolveFetchErrorFallsBack(t *testing.T) {
	target := Resolve(context.Background(), stubSource{err: fmt.Errorf("boom")}, model.LangJava, 2, 10)
	if !target.UsedFallback {
		t.Fatalf("expected fallback on fetch error")
	}
	if target.Notice == "" {
		t.Fatalf("fetch error must surface a notice")
	}
	if target.Text != SampleCode(model.LangJava) {
		t.Fatalf("expected the java sample")
	}
}

func TestResolveTooShortSubstitutesSample(t *testing.T) {
	target := Resolve(context.Background(), stubSource{text: "one\ntwo"}, model.LangRust, 5, 10)
	if !target.UsedFallback {
		t.Fatalf("expected fallback for too-short text")
	}
	if target.Notice != "" {
		t.Fatalf("length-band substitution must be silent, got %q", target.Notice)
	}
}

func TestResolveTooLongTruncates(t *testing.T) {
	long := strings.Repeat("line\n", 20)
	target := Resolve(context.Background(), stubSource{text: long}, model.LangRust, 2, 10)
	if target.UsedFallback {
		t.Fatalf("too-long text must be truncated, not replaced")
	}
	if got := len(strings.Split(target.Text, "\n")); got != 10 {
		t.Fatalf("expected 10 lines after truncation, got %d", got)
	}
}

func TestResolveInBandPassesThrough(t *testing.T) {
	text := "a\nb\nc\nd\ne"
	target := Resolve(context.Background(), stubSource{text: text}, model.LangPython, 3, 10)
	if target.UsedFallback || target.Text != text {
		t.Fatalf("in-band text must pass through unchanged")
	}
}

func TestResolveNilSourceUsesSample(t *testing.T) {
	target := Resolve(context.Background(), nil, model.LangCpp, 0, 0)
	if !target.UsedFallback || target.Text != SampleCode(model.LangCpp) {
		t.Fatalf("nil source must resolve to the sample")
	}
	if target.Notice != "" {
		t.Fatalf("offline sample use is not a warning")
	}
}

func TestSampleCodeKnownLanguages(t *testing.T) {
	for _, lang := range model.Languages() {
		if SampleCode(lang) == "" {
			t.Fatalf("missing sample for %s", lang)
		}
	}
	if SampleCode(model.Language("nope")) != SampleCode(model.LangPython) {
		t.Fatalf("unknown language must fall back to the python sample")
	}
}
