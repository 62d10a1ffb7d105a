package cryptography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptDecryptMessage(t *testing.T) {
	plaintext := []byte("my shiny secret")

	blob, err := EncryptMessage("hunter2", plaintext)
	assert.NoError(t, err)
	assert.NotEmpty(t, blob)

	decrypted, err := DecryptMessage("hunter2", blob)
	assert.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecryptMessageWrongPassword(t *testing.T) {
	blob, err := EncryptMessage("hunter2", []byte("my shiny secret"))
	assert.NoError(t, err)

	_, err = DecryptMessage("*******", blob)
	assert.Error(t, err)
}

func TestDecryptMessageMalformed(t *testing.T) {
	_, err := DecryptMessage("hunter2", "not base64 at all!!!")
	assert.Error(t, err)

	_, err = DecryptMessage("hunter2", "c2hvcnQ=") // too short for a salt
	assert.Error(t, err)
}

func TestEncryptMessageSaltsDiffer(t *testing.T) {
	first, err := EncryptMessage("hunter2", []byte("same text"))
	assert.NoError(t, err)
	second, err := EncryptMessage("hunter2", []byte("same text"))
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSymmetric(t *testing.T) {
	key, err := GenRandom(SymKeySize)
	assert.NoError(t, err)

	data := []byte("raw symmetric payload")
	sealed, err := Encrypt(data, key)
	assert.NoError(t, err)

	opened, err := Decrypt(sealed, key)
	assert.NoError(t, err)
	assert.Equal(t, data, opened)

	// tampering must not go unnoticed
	sealed[len(sealed)-1] ^= 1
	_, err = Decrypt(sealed, key)
	assert.Error(t, err)
}

func TestSymmetricBadKey(t *testing.T) {
	_, err := Encrypt([]byte("x"), []byte("short key"))
	assert.Error(t, err)
	_, err = Decrypt([]byte("x"), []byte("short key"))
	assert.Error(t, err)
}

func TestGenRandom(t *testing.T) {
	_, err := GenRandom(0)
	assert.Error(t, err)

	data, err := GenRandom(32)
	assert.NoError(t, err)
	assert.Len(t, data, 32)
}
