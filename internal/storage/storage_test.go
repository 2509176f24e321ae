package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"localhost:9000", "localhost:9000"},
		{"http://localhost:9000", "localhost:9000"},
		{"https://abc.r2.cloudflarestorage.com/bucket/path", "abc.r2.cloudflarestorage.com"},
		{"  https://s3.us-west-2.amazonaws.com/ ", "s3.us-west-2.amazonaws.com"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeEndpoint(tt.in); got != tt.want {
				t.Errorf("normalizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectStorageType(t *testing.T) {
	tests := []struct {
		endpoint string
		want     StorageType
	}{
		{"", StorageTypeS3},
		{"https://ACCOUNT.r2.cloudflarestorage.com", StorageTypeR2},
		{"s3.eu-central-1.amazonaws.com", StorageTypeS3},
		{"minio:9000", StorageTypeS3Compatible},
	}
	for _, tt := range tests {
		if got := detectStorageType(tt.endpoint); got != tt.want {
			t.Errorf("detectStorageType(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}

func TestMemoryStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	body := "title,overview\nAlpha,spy\n"
	if err := s.Upload(ctx, "catalog.csv", strings.NewReader(body), int64(len(body)), "text/csv"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	ok, err := s.Exists(ctx, "catalog.csv")
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v; want true, nil", ok, err)
	}

	rc, err := s.Download(ctx, "catalog.csv")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != body {
		t.Errorf("Download() = %q, want %q", got, body)
	}

	if _, err := s.Download(ctx, "missing.csv"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Download(missing) error = %v, want ErrObjectNotFound", err)
	}
}

func TestMemoryStorage_UploadSizeMismatch(t *testing.T) {
	s := NewMemoryStorage()
	if err := s.Upload(context.Background(), "k", strings.NewReader("abc"), 10, "text/plain"); err == nil {
		t.Error("Upload() with wrong size should fail")
	}
}
