package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

// Streaming AES-CTR encryption with an HMAC-SHA512 trailer, used for
// passphrase-protected backup archives. Layout: version byte, IV, AES salt,
// HMAC salt, ciphertext, HMAC over everything after the version byte.

const (
	version  byte = 0x1
	ivSize        = 16
	saltSize      = 32
	macSize       = sha512.Size
)

var ErrInvalidMAC = errors.New("backup authentication failed: wrong passphrase or corrupted archive")

func deriveKey(passphrase []byte, salt []byte) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, err
		}
	}

	key, err := scrypt.Key(passphrase, salt, 32768, 8, 1, 32)
	if err != nil {
		return nil, nil, err
	}

	return key, salt, nil
}

// Encrypt streams in to out, encrypting with keys derived from the
// passphrase.
func Encrypt(in io.Reader, out io.Writer, passphrase []byte) error {
	encKey, encSalt, err := deriveKey(passphrase, nil)
	if err != nil {
		return err
	}
	macKey, macSalt, err := deriveKey(passphrase, nil)
	if err != nil {
		return err
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return err
	}
	ctr := cipher.NewCTR(block, iv)
	mac := hmac.New(sha512.New, macKey)

	if _, err := out.Write([]byte{version}); err != nil {
		return err
	}

	w := io.MultiWriter(out, mac)
	for _, header := range [][]byte{iv, encSalt, macSalt} {
		if _, err := w.Write(header); err != nil {
			return err
		}
	}

	buf := make([]byte, 32*1024)
	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			ctr.XORKeyStream(buf[:n], buf[:n])
			if _, err := w.Write(buf[:n]); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	_, err = out.Write(mac.Sum(nil))

	return err
}

// Decrypt reverses Encrypt. The plaintext written to out must not be
// trusted until Decrypt returns nil: the HMAC only verifies at the end of
// the stream.
func Decrypt(in io.Reader, out io.Writer, passphrase []byte) error {
	// buffer the whole remainder so the trailing MAC can be split off
	header := make([]byte, 1+ivSize+2*saltSize)
	if _, err := io.ReadFull(in, header); err != nil {
		return err
	}
	if header[0] != version {
		return errors.New("unknown backup format version")
	}

	iv := header[1 : 1+ivSize]
	encSalt := header[1+ivSize : 1+ivSize+saltSize]
	macSalt := header[1+ivSize+saltSize:]

	encKey, _, err := deriveKey(passphrase, encSalt)
	if err != nil {
		return err
	}
	macKey, _, err := deriveKey(passphrase, macSalt)
	if err != nil {
		return err
	}

	rest, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	if len(rest) < macSize {
		return errors.New("truncated backup archive")
	}
	ciphertext, sum := rest[:len(rest)-macSize], rest[len(rest)-macSize:]

	mac := hmac.New(sha512.New, macKey)
	mac.Write(header[1:])
	mac.Write(ciphertext)
	if !hmac.Equal(sum, mac.Sum(nil)) {
		return ErrInvalidMAC
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return err
	}
	ctr := cipher.NewCTR(block, iv)
	ctr.XORKeyStream(ciphertext, ciphertext)

	_, err = out.Write(ciphertext)

	return err
}
