package nickname_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roastboard/roastboard/internal/nickname"
)

var presetPool = map[string]bool{
	"Cooked-Intern-404":     true,
	"Downbad-Developer-007": true,
	"Scrolling-Doom-999":    true,
	"Touch-Grass-101":       true,
	"Zero-Rizz-888":         true,
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func TestGenerate(t *testing.T) {
	srv := completionServer(t, `{"nickname": "Broke-Barista-333"}`)
	defer srv.Close()

	p := nickname.NewProvider(srv.URL, "key", "test-model", 1.2)
	name := p.Generate(context.Background())
	if name != "Broke-Barista-333" {
		t.Errorf("Generate() = %q, want generated name", name)
	}
}

func TestGenerate_ChattyCompletion(t *testing.T) {
	srv := completionServer(t, `Here you go: {"nickname": "Doomed-Decorator-777"} have fun!`)
	defer srv.Close()

	p := nickname.NewProvider(srv.URL, "key", "test-model", 1.2)
	if name := p.Generate(context.Background()); name != "Doomed-Decorator-777" {
		t.Errorf("Generate() = %q, want name scanned out of prose", name)
	}
}

func TestGenerate_FallbackOnMissingKey(t *testing.T) {
	p := nickname.NewProvider("http://127.0.0.1:1", "", "test-model", 1.2)

	// Repeated calls under forced failure always land in the preset pool.
	for i := 0; i < 20; i++ {
		name := p.Generate(context.Background())
		if !presetPool[name] {
			t.Fatalf("Generate() = %q, want a preset fallback name", name)
		}
	}
}

func TestGenerate_FallbackOnUnreachableHost(t *testing.T) {
	p := nickname.NewProvider("http://127.0.0.1:1", "key", "test-model", 1.2)
	if name := p.Generate(context.Background()); !presetPool[name] {
		t.Errorf("Generate() = %q, want a preset fallback name", name)
	}
}

func TestGenerate_FallbackOnMalformedCompletion(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no json", "I forgot how to JSON"},
		{"missing field", `{"alias": "nope"}`},
		{"broken json", `{"nickname": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := completionServer(t, tc.content)
			defer srv.Close()

			p := nickname.NewProvider(srv.URL, "key", "test-model", 1.2)
			if name := p.Generate(context.Background()); !presetPool[name] {
				t.Errorf("Generate() = %q, want a preset fallback name", name)
			}
		})
	}
}

func TestGenerate_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := nickname.NewProvider(srv.URL, "key", "test-model", 1.2)
	if name := p.Generate(context.Background()); !presetPool[name] {
		t.Errorf("Generate() = %q, want a preset fallback name", name)
	}
}
