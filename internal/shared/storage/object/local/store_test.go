package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	payload := []byte("plain text resume body")
	key, size, mimeType, err := store.Save(ctx, "resumes", "resume.txt", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("expected size %d, got %d", len(payload), size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("expected text/plain mime, got %q", mimeType)
	}
	if !strings.HasPrefix(key, "resumes/") {
		t.Fatalf("expected namespaced key, got %q", key)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestOpenRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatal("expected error for traversal key")
	}
	if _, err := store.Open(context.Background(), "/abs/path"); err == nil {
		t.Fatal("expected error for absolute key")
	}
}

func TestDeleteMissingObjectIsNoop(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Delete(context.Background(), "resumes/missing.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
