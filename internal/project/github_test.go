package project

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestAnalyzerResolvesRepository(t *testing.T) {
	readme := base64.StdEncoding.EncodeToString([]byte("# Demo\nA sample project."))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/alice/demo":
			fmt.Fprint(w, `{"language": "Go", "description": "A demo service"}`)
		case "/repos/alice/demo/contents":
			fmt.Fprint(w, `[{"name": "go.mod", "type": "file"}, {"name": "src", "type": "dir"}, {"name": "Dockerfile", "type": "file"}]`)
		case "/repos/alice/demo/readme":
			fmt.Fprintf(w, `{"content": %q}`, readme)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	a := NewAnalyzer(zap.NewNop())
	a.APIURL = server.URL

	raw, err := a.Resolve(context.Background(), "https://github.com/alice/demo", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Description != "A demo service" {
		t.Fatalf("unexpected description: %q", decoded.Description)
	}
	if decoded.Architecture != "Standard Application Structure" {
		t.Fatalf("unexpected architecture: %q", decoded.Architecture)
	}
	if len(decoded.TechStack) != 3 { // Go (language), Go (go.mod), Docker
		t.Fatalf("unexpected tech stack: %v", decoded.TechStack)
	}
	if decoded.Readme == "" {
		t.Fatal("expected readme excerpt")
	}
	if decoded.Summary == "" {
		t.Fatal("expected summary")
	}
}

func TestAnalyzerToleratesBadRepoURL(t *testing.T) {
	a := NewAnalyzer(zap.NewNop())

	raw, err := a.Resolve(context.Background(), "https://example.com/not-github", "")
	if err != nil {
		t.Fatalf("resolve must absorb bad urls, got %v", err)
	}
	if summary, _ := raw["summary"].(string); summary != "Project analyzed." {
		t.Fatalf("expected generic summary, got %q", summary)
	}
}

func TestDecodeEmptyMap(t *testing.T) {
	decoded, err := Decode(nil)
	if err != nil || decoded != nil {
		t.Fatalf("expected nil context for empty map, got %v, %v", decoded, err)
	}
}
