package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
)

// Header carries the request signature on configuration-store calls.
const Header = "X-Signature-Sha256"

// Signer produces base64-encoded HMAC-SHA256 signatures over request
// bodies. Reads sign the empty string; writes sign the exact JSON body.
type Signer struct {
	secret []byte
}

// New creates a Signer with the shared backend secret.
func New(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the signature for a raw body.
func (s *Signer) Sign(body []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignJSON marshals the payload and signs the resulting bytes. The
// caller must send exactly these bytes as the request body or the
// backend will reject the signature.
func (s *Signer) SignJSON(payload any) ([]byte, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	return body, s.Sign(body), nil
}

// Verify reports whether the signature matches the body.
func (s *Signer) Verify(body []byte, signature string) bool {
	expected, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
