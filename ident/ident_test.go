package ident

import (
	"strings"
	"testing"
	"time"
)

func TestNewAtShape(t *testing.T) {
	at := time.UnixMilli(1717243845123)
	id := NewAt("ORD", at)

	if len(id) != 3+6+6 {
		t.Fatalf("expected 15 chars, got %d (%q)", len(id), id)
	}
	if !strings.HasPrefix(id, "ORD845123") {
		t.Errorf("expected prefix ORD845123, got %q", id)
	}
	for _, c := range id[9:] {
		if !strings.ContainsRune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", c) {
			t.Errorf("suffix char %q not base36 upper", c)
		}
	}
}

func TestNewDistinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := New("PAY")
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}

func TestNewTransactionID(t *testing.T) {
	id := NewTransactionID()
	if !strings.HasPrefix(id, "TXN") {
		t.Errorf("expected TXN prefix, got %q", id)
	}
	if len(id) != 3+36 {
		t.Errorf("expected TXN + uuid, got %q", id)
	}
}
