package system

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
)

// secretReplacer remaps the base64 characters that are awkward in env files
// and shell commands. The exact mapping matters: other tooling around the
// generated env file expects this transform, not base64url.
var secretReplacer = strings.NewReplacer("/", "_", "+", "-", "=", "x")

// GenerateSecret returns a random secret built from n bytes of crypto/rand
// output, base64-encoded with '/', '+' and '=' remapped to '_', '-' and 'x'.
// The result never contains a newline.
func GenerateSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return secretReplacer.Replace(base64.StdEncoding.EncodeToString(buf)), nil
}
