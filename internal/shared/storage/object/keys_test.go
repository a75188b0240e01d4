package object

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestOwnerKeyIsStableHex(t *testing.T) {
	got := OwnerKey("user-12345")
	if got != OwnerKey("user-12345") {
		t.Fatalf("expected stable hash")
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
}

func TestNewKeySanitizes(t *testing.T) {
	key, err := NewKey("alice", "cv/final.pdf")
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	if !strings.HasPrefix(key, OwnerKey("alice")+"/") || !strings.HasSuffix(key, "_cv_final.pdf") {
		t.Fatalf("unexpected key %q", key)
	}
	if _, err := NewKey("alice", "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestCleanKey(t *testing.T) {
	for _, bad := range []string{"", "../x", "/abs/path", "a/../../b"} {
		if _, err := CleanKey(bad); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("CleanKey(%q) expected ErrInvalidKey, got %v", bad, err)
		}
	}
	got, err := CleanKey("owner//file.pdf")
	if err != nil || got != "owner/file.pdf" {
		t.Fatalf("CleanKey normalized to %q, %v", got, err)
	}
}

func TestSniffReplaysHead(t *testing.T) {
	mime, r, err := Sniff(strings.NewReader("%PDF-1.4 rest of file"))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if mime != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", mime)
	}
	all, _ := io.ReadAll(r)
	if string(all) != "%PDF-1.4 rest of file" {
		t.Fatalf("sniffed bytes were not replayed: %q", all)
	}
}
