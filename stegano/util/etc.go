package util

import (
	"crypto/rand"
	"os"
)

const ShreddingCount = 10

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CreateTempfile writes data into a fresh temporary file and returns
// its path. Callers are expected to ShredFile it when done.
func CreateTempfile(data []byte) (string, error) {
	f, err := os.CreateTemp("", "veil-")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if data != nil {
		if _, err := f.Write(data); err != nil {
			return "", err
		}
	}
	return f.Name(), nil
}

// ShredFile overwrites the file with random bytes a few times and
// removes it. Carrier temp files hold plaintext-adjacent material, so
// they never just get unlinked.
func ShredFile(filename string) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return err
	}
	buf := make([]byte, fileInfo.Size())
	for i := 0; i < ShreddingCount; i++ {
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		if err = os.WriteFile(filename, buf, 0600); err != nil {
			return err
		}
	}
	return os.Remove(filename)
}
