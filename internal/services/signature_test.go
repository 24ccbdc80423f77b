package services

import (
	"testing"
)

func TestSignatureVerifier_Verify(t *testing.T) {
	verifier := NewSignatureVerifier("test-secret")
	body := []byte(`{"event":"payment.succeeded","data":{"id":"txn_1"}}`)
	signature := verifier.Sign(body)

	if err := verifier.Verify(body, signature); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestSignatureVerifier_RejectsMutations(t *testing.T) {
	verifier := NewSignatureVerifier("test-secret")
	body := []byte(`{"event":"payment.succeeded"}`)
	signature := verifier.Sign(body)

	// Flip a single bit in every byte position of the body.
	for i := range body {
		mutated := make([]byte, len(body))
		copy(mutated, body)
		mutated[i] ^= 0x01
		if err := verifier.Verify(mutated, signature); err == nil {
			t.Fatalf("mutated body at byte %d accepted", i)
		}
	}

	// Flip a character in every position of the signature.
	for i := range signature {
		mutated := []byte(signature)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		if string(mutated) == signature {
			continue
		}
		if err := verifier.Verify(body, string(mutated)); err == nil {
			t.Fatalf("mutated signature at byte %d accepted", i)
		}
	}
}

func TestSignatureVerifier_MissingHeader(t *testing.T) {
	verifier := NewSignatureVerifier("test-secret")
	if err := verifier.Verify([]byte("{}"), ""); err == nil {
		t.Fatal("missing signature header accepted")
	}
}

func TestSignatureVerifier_MissingSecret(t *testing.T) {
	verifier := NewSignatureVerifier("")
	// Even a "correct" signature for the empty secret must be rejected.
	signature := NewSignatureVerifier("").Sign([]byte("{}"))
	if err := verifier.Verify([]byte("{}"), signature); err == nil {
		t.Fatal("verification succeeded without a configured secret")
	}
}

func TestSignatureVerifier_WrongSecret(t *testing.T) {
	body := []byte(`{"event":"checkout.completed"}`)
	signature := NewSignatureVerifier("other-secret").Sign(body)
	if err := NewSignatureVerifier("test-secret").Verify(body, signature); err == nil {
		t.Fatal("signature from a different secret accepted")
	}
}
