package utils

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := make([]byte, 100*1024)
	_, err := rand.Read(plaintext)
	require.NoError(t, err)

	var encrypted bytes.Buffer
	require.NoError(t, Encrypt(bytes.NewReader(plaintext), &encrypted, []byte("passphrase")))

	var decrypted bytes.Buffer
	require.NoError(t, Decrypt(bytes.NewReader(encrypted.Bytes()), &decrypted, []byte("passphrase")))

	assert.Equal(t, plaintext, decrypted.Bytes())
}

func TestDecryptWrongPassphrase(t *testing.T) {
	var encrypted bytes.Buffer
	require.NoError(t, Encrypt(bytes.NewReader([]byte("backup data")), &encrypted, []byte("right")))

	var decrypted bytes.Buffer
	err := Decrypt(bytes.NewReader(encrypted.Bytes()), &decrypted, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidMAC)
}

func TestDecryptTruncatedArchive(t *testing.T) {
	var encrypted bytes.Buffer
	require.NoError(t, Encrypt(bytes.NewReader([]byte("backup data")), &encrypted, []byte("key")))

	data := encrypted.Bytes()
	var decrypted bytes.Buffer
	err := Decrypt(bytes.NewReader(data[:len(data)-10]), &decrypted, []byte("key"))
	assert.Error(t, err)
}
