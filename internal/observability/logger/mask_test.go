package logger

import (
	"net/http"
	"testing"
)

func TestMaskSignature(t *testing.T) {
	if got := MaskSignature("c2lnbmF0dXJlLXZhbHVl"); got != "****dnVl" {
		t.Fatalf("unexpected masked signature: %q", got)
	}
	if got := MaskSignature(""); got != "" {
		t.Fatalf("expected empty mask, got %q", got)
	}
}

func TestMaskAuthorizationKeepsScheme(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef123456")
	if got != "Bearer ****3456" {
		t.Fatalf("unexpected masked authorization: %q", got)
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer abcdef123456")
	headers.Set("X-Signature-Sha256", "deadbeefcafe")
	headers.Set("Content-Type", "application/json")

	masked := MaskHeaders(headers)
	if masked["Authorization"] != "Bearer ****3456" {
		t.Fatalf("authorization not masked: %q", masked["Authorization"])
	}
	if masked["X-Signature-Sha256"] != "****cafe" {
		t.Fatalf("signature header not masked: %q", masked["X-Signature-Sha256"])
	}
	if masked["Content-Type"] != "application/json" {
		t.Fatalf("content type should pass through: %q", masked["Content-Type"])
	}
}
