package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "humhub.env")
	content := `# generated by humprep
TZ=Europe/Paris

MYSQL_PASSWORD="s3cret-value"
HUMHUB_HOST='social.example.org'
LETSENCRYPT_STAGING=true
EMPTY=
BROKEN LINE WITHOUT EQUALS
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0640))

	values, err := ParseEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Paris", values["TZ"])
	assert.Equal(t, "s3cret-value", values["MYSQL_PASSWORD"], "double quotes are stripped")
	assert.Equal(t, "social.example.org", values["HUMHUB_HOST"], "single quotes are stripped")
	assert.Equal(t, "true", values["LETSENCRYPT_STAGING"])
	assert.Equal(t, "", values["EMPTY"])
	assert.NotContains(t, values, "BROKEN LINE WITHOUT EQUALS")
	assert.NotContains(t, values, "# generated by humprep")
}

func TestParseEnvFileMissing(t *testing.T) {
	values, err := ParseEnvFile(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestParseEnvFileKeepsInnerQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "humhub.env")
	require.NoError(t, os.WriteFile(path, []byte("A=\"it's \"quoted\"\"\n"), 0640))

	values, err := ParseEnvFile(path)
	require.NoError(t, err)

	// only one layer of surrounding quotes is stripped
	assert.Equal(t, `it's "quoted"`, values["A"])
}
