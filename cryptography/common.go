package cryptography

import (
	"crypto/rand"
	"fmt"
	"runtime"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	SymKeySize = chacha20poly1305.KeySize
	SaltSize   = 16
)

// chacha20poly1305 encryption+authentication
func Encrypt(data, key []byte) ([]byte, error) {
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("invalid key size %d", len(key))
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, data, nil)
	return append(nonce, ct...), nil
}

func Decrypt(data, key []byte) ([]byte, error) {
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("invalid key size %d", len(key))
	}
	if len(data) < chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("invalid length of data")
	}
	nonce := data[:chacha20poly1305.NonceSize]
	data = data[chacha20poly1305.NonceSize:]
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, data, nil)
}

// derive an encryption key from a password with argon2id.
// time=3, memory=32MB per the draft RFC recommendation.
func DeriveKey(password, saltBytes []byte) []byte {
	threads := uint8(runtime.NumCPU())
	return argon2.IDKey(password, saltBytes, 3, 32*1024, threads, SymKeySize)
}

// generate a random amount of bytes
func GenRandom(size uint) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("invalid size of random data")
	}
	data := make([]byte, size)
	if _, err := rand.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}
