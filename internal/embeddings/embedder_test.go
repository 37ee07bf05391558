package embeddings

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalize(t *testing.T) {
	v := []float32{3, 4}
	normalize(v)
	norm := math.Hypot(float64(v[0]), float64(v[1]))
	if math.Abs(norm-1) > 1e-6 {
		t.Errorf("norm after normalize: got %f, want 1", norm)
	}

	zero := []float32{0, 0, 0}
	normalize(zero)
	for _, x := range zero {
		if x != 0 {
			t.Errorf("zero vector must stay zero, got %v", zero)
		}
	}
}

func TestOllamaEmbed_NormalizesAndPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		// One raw, unnormalized vector per input, scaled by position so
		// ordering is observable after normalization.
		resp := ollamaEmbedResponse{}
		for i := range req.Input {
			resp.Embeddings = append(resp.Embeddings, []float32{float32(i + 1), 0, 0})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e := NewOllamaEmbedder("nomic-embed-text", 3, srv.URL)
	got, err := e.Embed(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(got))
	}
	for i, v := range got {
		if v[0] != 1 || v[1] != 0 || v[2] != 0 {
			t.Errorf("vector %d not unit-normalized: %v", i, v)
		}
	}
}

func TestOllamaEmbed_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: [][]float32{{1}}})
	}))
	defer srv.Close()

	e := NewOllamaEmbedder("nomic-embed-text", 1, srv.URL)
	if _, err := e.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error on embedding count mismatch")
	}
}

func TestOllamaEmbed_EmptyInput(t *testing.T) {
	e := NewOllamaEmbedder("nomic-embed-text", 1, "http://127.0.0.1:0")
	got, err := e.Embed(context.Background(), nil)
	if err != nil || got != nil {
		t.Errorf("empty input: got %v, %v", got, err)
	}
}

func TestOpenAIModelDimensions(t *testing.T) {
	if ModelTextEmbedding3Small.dimensions() != 1536 {
		t.Error("small model should be 1536-dimensional")
	}
	if ModelTextEmbedding3Large.dimensions() != 3072 {
		t.Error("large model should be 3072-dimensional")
	}
}
