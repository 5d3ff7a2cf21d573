package ingest_test

import (
	"testing"

	"vagalink/ingest-service/internal/ingest"
)

// ── Fingerprint — normalization ────────────────────────────────────────────

func TestFingerprint_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := ingest.Fingerprint("Dev", "Acme", "Luanda")
	b := ingest.Fingerprint(" dev ", "ACME", "luanda")
	if a != b {
		t.Errorf("Fingerprint should normalize case and whitespace: %q != %q", a, b)
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := ingest.Fingerprint("Motorista", "LogCo", "Benguela")
	b := ingest.Fingerprint("Motorista", "LogCo", "Benguela")
	if a != b {
		t.Errorf("Fingerprint should be deterministic: %q != %q", a, b)
	}
}

// ── Fingerprint — field order ──────────────────────────────────────────────

func TestFingerprint_OrderSensitive(t *testing.T) {
	if ingest.Fingerprint("A", "B", "C") == ingest.Fingerprint("B", "A", "C") {
		t.Error("Fingerprint should depend on field order (title, company, locality)")
	}
}

// ── Fingerprint — digest value ─────────────────────────────────────────────

func TestFingerprint_KnownDigest(t *testing.T) {
	// md5("motorista|logco|benguela")
	const want = "b48c94666a39092d09d09bd92b20d2d1"
	got := ingest.Fingerprint("Motorista", "LogCo", "Benguela")
	if got != want {
		t.Errorf("Fingerprint(Motorista, LogCo, Benguela) = %q, want %q", got, want)
	}
}

func TestFingerprint_LowercaseHexShape(t *testing.T) {
	got := ingest.Fingerprint("Dev", "Acme", "Luanda")
	if len(got) != 32 {
		t.Fatalf("Fingerprint should be 32 hex chars, got %d (%q)", len(got), got)
	}
	for _, c := range got {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("Fingerprint should be lowercase hex, got %q", got)
		}
	}
}
