package agentapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roastboard/roastboard/internal/agentapi"
	"github.com/roastboard/roastboard/pkg/models"
)

// fakeAgentServer mimics the hosted agent platform: thread creation, a
// blocking run, and final-state retrieval.
func fakeAgentServer(t *testing.T, lastContent string, calls *[]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /threads", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "create")
		if r.Header.Get("X-Api-Key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"thread_id": "t-123"})
	})
	mux.HandleFunc("POST /threads/t-123/runs/wait", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "run")
		var req struct {
			AssistantID string `json:"assistant_id"`
			Input       struct {
				Messages []struct {
					Role    string               `json:"role"`
					Content []models.ContentPart `json:"content"`
				} `json:"messages"`
			} `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.AssistantID != "roaster" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	})
	mux.HandleFunc("GET /threads/t-123/state", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "state")
		json.NewEncoder(w).Encode(map[string]any{
			"values": map[string]any{
				"messages": []map[string]any{
					{"content": "ignored earlier message"},
					{"content": lastContent},
				},
			},
		})
	})
	return httptest.NewServer(mux)
}

func TestInvoke(t *testing.T) {
	var calls []string
	srv := fakeAgentServer(t, "the final roast", &calls)
	defer srv.Close()

	c := agentapi.NewClient(srv.URL, "key", "langsmith-api-key", 10*time.Second)
	msg := models.MultimodalMessage{{Type: models.PartText, Text: "roast me"}}

	raw, err := c.Invoke(context.Background(), "roaster", msg)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	var got string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("last message content not a string: %v", err)
	}
	if got != "the final roast" {
		t.Errorf("Invoke() content = %q, want last message", got)
	}

	want := []string{"create", "run", "state"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestInvoke_MissingCredential(t *testing.T) {
	var calls []string
	srv := fakeAgentServer(t, "unused", &calls)
	defer srv.Close()

	c := agentapi.NewClient(srv.URL, "", "", 10*time.Second)

	_, err := c.Invoke(context.Background(), "roaster", nil)
	if !errors.Is(err, agentapi.ErrMissingCredential) {
		t.Fatalf("Invoke() error = %v, want ErrMissingCredential", err)
	}
	if len(calls) != 0 {
		t.Errorf("no remote call should be made without a credential, got %v", calls)
	}
}

func TestInvoke_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := agentapi.NewClient(srv.URL, "key", "", 10*time.Second)
	if _, err := c.Invoke(context.Background(), "roaster", nil); err == nil {
		t.Fatal("Invoke() expected error on 500 response")
	}
}

func TestInvoke_Unreachable(t *testing.T) {
	c := agentapi.NewClient("http://127.0.0.1:1", "key", "", 2*time.Second)
	if _, err := c.Invoke(context.Background(), "roaster", nil); err == nil {
		t.Fatal("Invoke() expected error for unreachable host")
	}
}

func TestInvoke_EmptyState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /threads", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"thread_id": "t-1"})
	})
	mux.HandleFunc("POST /threads/t-1/runs/wait", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	})
	mux.HandleFunc("GET /threads/t-1/state", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"values": map[string]any{"messages": []any{}}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := agentapi.NewClient(srv.URL, "key", "", 10*time.Second)
	if _, err := c.Invoke(context.Background(), "roaster", nil); err == nil {
		t.Fatal("Invoke() expected error for empty message history")
	}
}
