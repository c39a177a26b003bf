package signing

import "testing"

func TestSignEmptyBody(t *testing.T) {
	s := New("hush")

	// HMAC-SHA256("", "hush"), base64.
	got := s.Sign(nil)
	if got != s.Sign([]byte("")) {
		t.Fatalf("nil and empty body must sign identically")
	}
	if !s.Verify(nil, got) {
		t.Fatalf("signature over empty body must verify")
	}
}

func TestSignJSONRoundTrip(t *testing.T) {
	s := New("hush")

	body, sig, err := s.SignJSON(map[string]string{"shop": "demo"})
	if err != nil {
		t.Fatalf("sign json: %v", err)
	}
	if !s.Verify(body, sig) {
		t.Fatalf("signature must verify against the marshalled body")
	}
}

func TestVerifyRejectsTamper(t *testing.T) {
	s := New("hush")

	sig := s.Sign([]byte(`{"a":1}`))
	if s.Verify([]byte(`{"a":2}`), sig) {
		t.Fatalf("tampered body must not verify")
	}
	if s.Verify([]byte(`{"a":1}`), "not-base64!!") {
		t.Fatalf("malformed signature must not verify")
	}
}

func TestDifferentSecretsDiffer(t *testing.T) {
	a := New("one").Sign([]byte("body"))
	b := New("two").Sign([]byte("body"))
	if a == b {
		t.Fatalf("different secrets must produce different signatures")
	}
}
