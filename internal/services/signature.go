package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SignatureVerifier verifies lomi webhook signatures: a hex-encoded
// HMAC-SHA256 of the exact raw request body, carried in the signature header.
type SignatureVerifier struct {
	secret string
}

// NewSignatureVerifier creates a verifier for the given shared secret.
func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: secret}
}

// Sign computes the hex HMAC-SHA256 signature for a body.
func (v *SignatureVerifier) Sign(body []byte) string {
	h := hmac.New(sha256.New, []byte(v.secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks a signature header against the raw body. The comparison is
// constant-time. A missing header or unconfigured secret is a verification
// error, not a distinct failure mode.
func (v *SignatureVerifier) Verify(body []byte, signatureHeader string) error {
	if v.secret == "" {
		return fmt.Errorf("webhook secret is not configured")
	}
	if signatureHeader == "" {
		return fmt.Errorf("missing signature header")
	}
	expected := v.Sign(body)
	if !hmac.Equal([]byte(expected), []byte(signatureHeader)) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}
