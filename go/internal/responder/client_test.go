package responder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mcdev12/sparring/go/internal/models"
)

func TestGenerateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/generate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.UserInput != "Tax cuts help growth" || req.Stance != "pro" {
			t.Errorf("unexpected payload: %+v", req)
		}

		json.NewEncoder(w).Encode(generateResponse{AIResponse: "Deficits say otherwise."})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	reply, err := client.Generate(context.Background(), "Tax cuts help growth", models.StancePro)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != "Deficits say otherwise." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestGenerateSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		json.NewEncoder(w).Encode(generateResponse{AIResponse: "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 5*time.Second)
	if _, err := client.Generate(context.Background(), "point", models.StanceCon); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	if _, err := client.Generate(context.Background(), "point", models.StancePro); err == nil {
		t.Error("expected error for non-2xx status")
	}
}

func TestGenerateMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	if _, err := client.Generate(context.Background(), "point", models.StancePro); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	if _, err := client.Generate(context.Background(), "point", models.StancePro); err == nil {
		t.Error("expected error for empty aiResponse")
	}
}

func TestGenerateUnreachableService(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", time.Second)
	if _, err := client.Generate(context.Background(), "point", models.StancePro); err == nil {
		t.Error("expected transport error")
	}
}
