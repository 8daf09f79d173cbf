package domain

import (
	"testing"
	"time"
)

func TestPaste_IsLive(t *testing.T) {
	exp := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	p := Paste{ID: "a", ExpiresAt: exp}

	if !p.IsLive(exp.Add(-time.Nanosecond)) {
		t.Fatalf("paste should be live just before expiry")
	}
	if p.IsLive(exp) {
		t.Fatalf("paste must not be live at expiresAt")
	}
	if p.IsLive(exp.Add(time.Second)) {
		t.Fatalf("paste must not be live after expiresAt")
	}
}
