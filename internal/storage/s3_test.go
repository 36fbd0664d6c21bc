package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewS3BackendRequiresBucket(t *testing.T) {
	if _, err := NewS3Backend(S3Config{Region: "us-east-1"}); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}

func TestS3BackendPublishMockServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT method, got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "trimmed/alpha_original.wav") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read body: %v", err)
		}
		if string(body) != "audio bytes" {
			t.Errorf("unexpected body: %s", string(body))
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	backend, err := NewS3Backend(S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Endpoint:        server.URL,
		Prefix:          "trimmed",
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	})
	if err != nil {
		t.Fatalf("NewS3Backend() error = %v", err)
	}

	src := filepath.Join(t.TempDir(), "alpha_original.wav")
	if err := os.WriteFile(src, []byte("audio bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	url, err := backend.Publish(context.Background(), src, "alpha_original.wav")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	expectedURL := "https://test-bucket.s3.us-east-1.amazonaws.com/trimmed/alpha_original.wav"
	if url != expectedURL {
		t.Errorf("url = %v, want %v", url, expectedURL)
	}
}
