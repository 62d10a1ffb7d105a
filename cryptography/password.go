package cryptography

import (
	"encoding/base64"
	"fmt"
)

/*
 * password-based message encryption for payloads that travel inside a
 * carrier. Wire format: base64( salt || nonce || ciphertext ), with a
 * fresh random salt per message so equal plaintexts never collide.
 */

// EncryptMessage seals plaintext under a key derived from password.
func EncryptMessage(password string, plaintext []byte) (string, error) {
	salt, err := GenRandom(SaltSize)
	if err != nil {
		return "", err
	}
	key := DeriveKey([]byte(password), salt)
	sealed, err := Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(append(salt, sealed...)), nil
}

// DecryptMessage opens a blob produced by EncryptMessage. A wrong
// password and a corrupted blob are indistinguishable here; callers
// treat both as a parameter mismatch.
func DecryptMessage(password string, blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("malformed message blob: %w", err)
	}
	if len(raw) <= SaltSize {
		return nil, fmt.Errorf("message blob too short")
	}
	key := DeriveKey([]byte(password), raw[:SaltSize])
	return Decrypt(raw[SaltSize:], key)
}
