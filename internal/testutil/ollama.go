package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// GenerateRequest mirrors the Ollama generate payload so tests can
// assert on what the client sent.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
	Stream bool   `json:"stream"`
}

// FakeOllama is an in-process stand-in for an Ollama server. Fields are
// guarded so tests can flip behavior between requests.
type FakeOllama struct {
	Server *httptest.Server

	mu         sync.Mutex
	healthy    bool
	reply      string
	failStatus int
	requests   []GenerateRequest
}

// StartFakeOllama boots the fake and registers its shutdown with the
// test cleanup.
func StartFakeOllama(t *testing.T) *FakeOllama {
	t.Helper()
	f := &FakeOllama{healthy: true, reply: "ok"}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", f.handleTags)
	mux.HandleFunc("/api/generate", f.handleGenerate)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL clients should point at.
func (f *FakeOllama) URL() string {
	return f.Server.URL
}

// SetHealthy controls the tag-listing health probe.
func (f *FakeOllama) SetHealthy(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthy = ok
}

// SetReply sets the text returned for generate requests.
func (f *FakeOllama) SetReply(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reply = text
	f.failStatus = 0
}

// FailWith makes generate requests return the given HTTP status.
func (f *FakeOllama) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
}

// Requests returns a copy of every generate request received so far.
func (f *FakeOllama) Requests() []GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]GenerateRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeOllama) handleTags(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	healthy := f.healthy
	f.mu.Unlock()
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, `{"models":[{"name":"dolphin-mistral:7b"}]}`)
}

func (f *FakeOllama) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	status := f.failStatus
	reply := f.reply
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"response": reply})
}
