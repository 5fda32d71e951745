package crypto

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/nacl/secretbox"
)

func testKey(seed byte) [32]byte {
	var key [32]byte
	for i := range key {
		key[i] = seed + byte(i)
	}
	return key
}

func TestEncryptDecryptDetached(t *testing.T) {
	key := testKey(7)
	nonce, err := GenerateNonce()
	if err != nil {
		t.Fatalf("GenerateNonce() error: %v", err)
	}

	message := []byte("detached mode test message")
	ciphertext, tag, err := EncryptDetached(message, nonce, key)
	if err != nil {
		t.Fatalf("EncryptDetached() error: %v", err)
	}

	// Ciphertext length equals plaintext length, no padding
	if len(ciphertext) != len(message) {
		t.Errorf("ciphertext length = %d, want %d", len(ciphertext), len(message))
	}

	decrypted, err := DecryptDetached(ciphertext, tag, nonce, key)
	if err != nil {
		t.Fatalf("DecryptDetached() error: %v", err)
	}

	if !bytes.Equal(decrypted, message) {
		t.Errorf("decrypted = %q, want %q", decrypted, message)
	}
}

func TestEncryptDetachedEmptyMessage(t *testing.T) {
	key := testKey(3)
	nonce, _ := GenerateNonce()

	ciphertext, tag, err := EncryptDetached(nil, nonce, key)
	if err != nil {
		t.Fatalf("EncryptDetached() error: %v", err)
	}
	if len(ciphertext) != 0 {
		t.Errorf("ciphertext length = %d, want 0", len(ciphertext))
	}

	decrypted, err := DecryptDetached(ciphertext, tag, nonce, key)
	if err != nil {
		t.Fatalf("DecryptDetached() error: %v", err)
	}
	if len(decrypted) != 0 {
		t.Errorf("decrypted length = %d, want 0", len(decrypted))
	}
}

// The detached split must match NaCl's combined secretbox format
// (tag followed by ciphertext) byte for byte, or envelopes stop being
// interoperable with libsodium's crypto_secretbox_detached.
func TestDetachedMatchesCombinedSecretbox(t *testing.T) {
	key := testKey(11)
	nonce, _ := GenerateNonce()
	message := []byte("wire compatibility check")

	ciphertext, tag, err := EncryptDetached(message, nonce, key)
	if err != nil {
		t.Fatalf("EncryptDetached() error: %v", err)
	}

	combined := secretbox.Seal(nil, message, (*[24]byte)(&nonce), (*[32]byte)(&key))
	if !bytes.Equal(combined[:TagSize], tag[:]) {
		t.Error("detached tag differs from combined secretbox prefix")
	}
	if !bytes.Equal(combined[TagSize:], ciphertext) {
		t.Error("detached ciphertext differs from combined secretbox body")
	}
}

func TestDecryptDetachedRejectsTampering(t *testing.T) {
	key := testKey(5)
	nonce, _ := GenerateNonce()
	message := []byte("authenticated payload")

	ciphertext, tag, err := EncryptDetached(message, nonce, key)
	if err != nil {
		t.Fatalf("EncryptDetached() error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(ct []byte, tag *Tag, nonce *Nonce, key *[32]byte)
	}{
		{"Flipped ciphertext bit", func(ct []byte, _ *Tag, _ *Nonce, _ *[32]byte) { ct[0] ^= 0x01 }},
		{"Flipped tag bit", func(_ []byte, tag *Tag, _ *Nonce, _ *[32]byte) { tag[0] ^= 0x01 }},
		{"Flipped nonce bit", func(_ []byte, _ *Tag, nonce *Nonce, _ *[32]byte) { nonce[0] ^= 0x01 }},
		{"Flipped key bit", func(_ []byte, _ *Tag, _ *Nonce, key *[32]byte) { key[0] ^= 0x01 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ct := append([]byte(nil), ciphertext...)
			tagCopy := tag
			nonceCopy := nonce
			keyCopy := key
			tc.mutate(ct, &tagCopy, &nonceCopy, &keyCopy)

			if _, err := DecryptDetached(ct, tagCopy, nonceCopy, keyCopy); err == nil {
				t.Error("DecryptDetached() accepted tampered input")
			}
		})
	}
}

func TestGenerateNonceUniqueness(t *testing.T) {
	seen := make(map[Nonce]bool)
	for i := 0; i < 100; i++ {
		nonce, err := GenerateNonce()
		if err != nil {
			t.Fatalf("GenerateNonce() error: %v", err)
		}
		if seen[nonce] {
			t.Fatal("GenerateNonce() repeated a nonce")
		}
		seen[nonce] = true
	}
}
